package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type mealRepository interface {
	Create(ctx context.Context, input repository.CreateMealInput) (*models.MealEntry, error)
	ListForDay(ctx context.Context, userID int64, dayStart time.Time) ([]models.MealEntry, error)
}

type MealHandler struct {
	mealRepo mealRepository
}

func NewMealHandler(mealRepo mealRepository) *MealHandler {
	return &MealHandler{mealRepo: mealRepo}
}

type logMealRequest struct {
	Name     string   `json:"name"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	EatenAt  string   `json:"eaten_at"`
}

func (h *MealHandler) LogMeal(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "member" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req logMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if req.Calories < 0 || req.Protein < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "macros must be non-negative"})
	}

	eatenAt := time.Now().UTC()
	if raw := strings.TrimSpace(req.EatenAt); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "eaten_at must be a valid RFC3339 timestamp"})
		}
		eatenAt = parsed.UTC()
	}

	entry, err := h.mealRepo.Create(c.Context(), repository.CreateMealInput{
		UserID:   userID,
		Name:     name,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		EatenAt:  eatenAt,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to log meal"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"meal": entry})
}

func (h *MealHandler) ListMeals(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "member" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	day := time.Now().UTC()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := time.Parse(bookingDateLayout, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
		}
		day = parsed
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	entries, err := h.mealRepo.ListForDay(c.Context(), userID, dayStart)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch meals"})
	}

	summary := models.MealDaySummary{Entries: entries}
	for _, entry := range entries {
		summary.TotalCalories += entry.Calories
		summary.TotalProtein += entry.Protein
	}

	return c.JSON(fiber.Map{"meals": summary})
}
