package handlers

import (
	"context"
	"errors"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type foodRecommender interface {
	RecommendFoods(ctx context.Context, prefs services.FoodPreferences) ([]models.FoodWithScore, error)
}

type foodProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.MemberProfile, error)
}

type FoodHandler struct {
	service     foodRecommender
	profileRepo foodProfileReader
}

func NewFoodHandler(service *services.RecommendationService, profileRepo foodProfileReader) *FoodHandler {
	return &FoodHandler{
		service:     service,
		profileRepo: profileRepo,
	}
}

// GetRecommendedFoods ranks the catalog against the member's declared goals
// and diet. An empty list is a normal answer: nothing fits the diet.
func (h *FoodHandler) GetRecommendedFoods(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "member" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	foods, err := h.service.RecommendFoods(c.Context(), services.PreferencesFromProfile(profile))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch recommendations"})
	}

	return c.JSON(fiber.Map{"foods": foods})
}
