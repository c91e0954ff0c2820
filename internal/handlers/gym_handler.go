package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type gymCatalogRepository interface {
	List(ctx context.Context) ([]models.Gym, error)
	GetByID(ctx context.Context, gymID int64) (*models.Gym, error)
	ListPackages(ctx context.Context, gymID int64) ([]models.MembershipPackage, error)
}

type GymHandler struct {
	gymRepo gymCatalogRepository
}

func NewGymHandler(gymRepo gymCatalogRepository) *GymHandler {
	return &GymHandler{gymRepo: gymRepo}
}

func (h *GymHandler) ListGyms(c *fiber.Ctx) error {
	gyms, err := h.gymRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch gyms"})
	}
	return c.JSON(fiber.Map{"gyms": gyms})
}

func (h *GymHandler) GetGym(c *fiber.Ctx) error {
	gymID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || gymID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid gym id"})
	}

	gym, err := h.gymRepo.GetByID(c.Context(), gymID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Gym not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch gym"})
	}

	packages, err := h.gymRepo.ListPackages(c.Context(), gymID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch packages"})
	}

	return c.JSON(fiber.Map{
		"gym":      gym,
		"packages": packages,
	})
}
