package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type checkInApplicationService interface {
	IssueCode(ctx context.Context, userID int64) (string, time.Time, error)
	Redeem(ctx context.Context, operatorID int64, code string) (*models.CheckIn, error)
	ListToday(ctx context.Context, operatorID int64, now time.Time) ([]models.CheckIn, error)
}

type CheckInHandler struct {
	service checkInApplicationService
}

func NewCheckInHandler(service *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{service: service}
}

type scanRequest struct {
	Code string `json:"code"`
}

// IssueCode hands a member the payload to render as a QR code at the door.
func (h *CheckInHandler) IssueCode(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "member" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	code, expiresAt, err := h.service.IssueCode(c.Context(), userID)
	if err != nil {
		return mapCheckInError(c, err)
	}

	return c.JSON(fiber.Map{
		"code":       code,
		"expires_at": expiresAt,
	})
}

func (h *CheckInHandler) Scan(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "operator" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	operatorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Code) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code is required"})
	}

	checkIn, err := h.service.Redeem(c.Context(), operatorID, strings.TrimSpace(req.Code))
	if err != nil {
		return mapCheckInError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"check_in": checkIn})
}

func (h *CheckInHandler) ListToday(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "operator" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	operatorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	checkIns, err := h.service.ListToday(c.Context(), operatorID, time.Now())
	if err != nil {
		return mapCheckInError(c, err)
	}

	return c.JSON(fiber.Map{"check_ins": checkIns})
}

func mapCheckInError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoGymMembership):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Join a gym before checking in"})
	case errors.Is(err, services.ErrInvalidCode):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Code is invalid or expired"})
	case errors.Is(err, services.ErrWrongGym):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Code was issued for another gym"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process check-in"})
	}
}
