package handlers

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/services"
	bookingws "github.com/Dkharvari1/GymPlusPlus-sub000/internal/websocket"
	"github.com/Dkharvari1/GymPlusPlus-sub000/pkg/utils"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

const bookingDateLayout = "2006-01-02"

type reservationApplicationService interface {
	TakenHours(ctx context.Context, gymID int64, bookingType string, day time.Time) (map[int]struct{}, error)
	Reserve(ctx context.Context, userID int64, input services.ReserveInput) (*models.Booking, error)
	ListBookings(ctx context.Context, userID int64, upcomingOnly bool) ([]models.Booking, error)
}

type memberGymResolver interface {
	GetByUserID(ctx context.Context, userID int64) (*models.MemberProfile, error)
}

type BookingHandler struct {
	service     reservationApplicationService
	profileRepo memberGymResolver
	hub         *bookingws.Hub
	jwtSecret   string
}

func NewBookingHandler(
	service *services.ReservationService,
	profileRepo memberGymResolver,
	hub *bookingws.Hub,
	jwtSecret string,
) *BookingHandler {
	return &BookingHandler{
		service:     service,
		profileRepo: profileRepo,
		hub:         hub,
		jwtSecret:   jwtSecret,
	}
}

type reserveRequest struct {
	Type string `json:"type"`
	Date string `json:"date"`
	Hour int    `json:"hour"`
}

// GetAvailability returns the hours already booked for the member's gym on
// one day, for one resource type.
func (h *BookingHandler) GetAvailability(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "member" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookingType := strings.TrimSpace(c.Query("type"))
	if !models.ValidBookingType(bookingType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown booking type"})
	}

	day, err := time.Parse(bookingDateLayout, strings.TrimSpace(c.Query("date")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	gymID, err := h.resolveGymID(c, userID)
	if err != nil {
		return mapBookingError(c, err)
	}

	taken, err := h.service.TakenHours(c.Context(), gymID, bookingType, day)
	if err != nil {
		return mapBookingError(c, err)
	}

	hours := make([]int, 0, len(taken))
	for hour := range taken {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	return c.JSON(fiber.Map{
		"gym_id":      gymID,
		"type":        bookingType,
		"date":        day.Format(bookingDateLayout),
		"taken_hours": hours,
	})
}

func (h *BookingHandler) Reserve(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "member" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req reserveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	day, err := time.Parse(bookingDateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	gymID, err := h.resolveGymID(c, userID)
	if err != nil {
		return mapBookingError(c, err)
	}

	booking, err := h.service.Reserve(c.Context(), userID, services.ReserveInput{
		GymID: gymID,
		Type:  req.Type,
		Day:   day,
		Hour:  req.Hour,
	})
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "member" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	timeframe := strings.TrimSpace(c.Query("timeframe"))
	if timeframe != "" && timeframe != "upcoming" && timeframe != "all" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "timeframe must be upcoming or all"})
	}

	bookings, err := h.service.ListBookings(c.Context(), userID, timeframe == "upcoming")
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

// WebSocketAuth guards the booking feed upgrade. Tokens arrive as a query
// parameter because browser websocket clients cannot set headers.
func (h *BookingHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	bookingType := strings.TrimSpace(c.Query("type"))
	if !models.ValidBookingType(bookingType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown booking type"})
	}
	day, err := time.Parse(bookingDateLayout, strings.TrimSpace(c.Query("date")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	userID, err := parseWSUserID(claims)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	gymID, err := h.resolveGymID(c, userID)
	if err != nil {
		return mapBookingError(c, err)
	}

	c.Locals("topic", bookingws.Topic(gymID, bookingType, day))
	return c.Next()
}

func (h *BookingHandler) HandleWebSocket(conn *websocket.Conn) {
	topic, _ := conn.Locals("topic").(string)
	client := bookingws.NewClient(h.hub, conn, topic)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

func (h *BookingHandler) resolveGymID(c *fiber.Ctx, userID int64) (int64, error) {
	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return 0, err
	}
	if profile.GymID == nil {
		return 0, services.ErrNoGymMembership
	}
	return *profile.GymID, nil
}

func parseWSUserID(claims *utils.Claims) (int64, error) {
	return strconv.ParseInt(claims.UserID, 10, 64)
}

func (h *BookingHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}

func mapBookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking request"})
	case errors.Is(err, services.ErrSlotTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "That slot was just taken, pick another hour"})
	case errors.Is(err, services.ErrNoGymMembership):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Join a gym before booking"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process booking request"})
	}
}
