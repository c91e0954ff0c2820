package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type dashboardApplicationService interface {
	Summary(ctx context.Context, operatorID int64, now time.Time) (*models.DashboardSummary, error)
}

type DashboardHandler struct {
	service dashboardApplicationService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "operator" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	operatorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	summary, err := h.service.Summary(c.Context(), operatorID, time.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Operator is not linked to a gym"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch dashboard"})
	}

	return c.JSON(fiber.Map{"dashboard": summary})
}
