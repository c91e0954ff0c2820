package services

import (
	"context"
	"errors"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/repository"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSlotTaken       = errors.New("slot already taken")
	ErrNoGymMembership = errors.New("no gym membership")
	ErrInvalidCode     = errors.New("invalid check-in code")
	ErrWrongGym        = errors.New("code belongs to another gym")
)

type bookingStore interface {
	Create(ctx context.Context, input repository.CreateBookingInput) (*models.Booking, error)
	ListForDay(ctx context.Context, gymID int64, bookingType string, dayStart time.Time) ([]models.Booking, error)
	ExistsAt(ctx context.Context, gymID int64, bookingType string, start time.Time) (bool, error)
	ListByUser(ctx context.Context, userID int64, upcomingOnly bool) ([]models.Booking, error)
}

// BookingAnnouncer receives every successfully created booking so that other
// clients watching the same slot grid can refresh their taken-hours view.
type BookingAnnouncer interface {
	AnnounceBooking(booking *models.Booking)
}

type ReservationService struct {
	bookingRepo bookingStore
	announcer   BookingAnnouncer
}

func NewReservationService(bookingRepo bookingStore, announcer BookingAnnouncer) *ReservationService {
	return &ReservationService{
		bookingRepo: bookingRepo,
		announcer:   announcer,
	}
}

type ReserveInput struct {
	GymID int64
	Type  string
	Day   time.Time
	Hour  int
}

// TakenHours returns the set of hours already booked for (gym, type) on the
// given day. Hours are taken from each booking's start instant.
func (s *ReservationService) TakenHours(
	ctx context.Context,
	gymID int64,
	bookingType string,
	day time.Time,
) (map[int]struct{}, error) {
	if gymID <= 0 || !models.ValidBookingType(bookingType) || day.IsZero() {
		return nil, ErrInvalidInput
	}

	bookings, err := s.bookingRepo.ListForDay(ctx, gymID, bookingType, startOfDay(day))
	if err != nil {
		return nil, err
	}

	taken := make(map[int]struct{}, len(bookings))
	for _, booking := range bookings {
		taken[booking.Start.Hour()] = struct{}{}
	}
	return taken, nil
}

// Reserve commits one hour-long slot. The collision check is a point lookup
// at the exact start instant and is not atomic with the insert: two clients
// that both pass the check will both create a booking. That window is
// accepted; double bookings are rare at human pace and resolved manually.
func (s *ReservationService) Reserve(
	ctx context.Context,
	userID int64,
	input ReserveInput,
) (*models.Booking, error) {
	if userID <= 0 || input.GymID <= 0 || input.Day.IsZero() {
		return nil, ErrInvalidInput
	}
	if !models.ValidBookingType(input.Type) {
		return nil, ErrInvalidInput
	}
	if input.Hour < 0 || input.Hour > 23 {
		return nil, ErrInvalidInput
	}

	start := slotStart(input.Day, input.Hour)
	end := start.Add(models.SlotDuration)

	exists, err := s.bookingRepo.ExistsAt(ctx, input.GymID, input.Type, start)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlotTaken
	}

	booking, err := s.bookingRepo.Create(ctx, repository.CreateBookingInput{
		UserID: userID,
		GymID:  input.GymID,
		Type:   input.Type,
		Title:  models.BookingTitle(input.Type),
		Start:  start,
		End:    end,
	})
	if err != nil {
		return nil, err
	}

	if s.announcer != nil {
		s.announcer.AnnounceBooking(booking)
	}
	return booking, nil
}

func (s *ReservationService) ListBookings(
	ctx context.Context,
	userID int64,
	upcomingOnly bool,
) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.bookingRepo.ListByUser(ctx, userID, upcomingOnly)
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func slotStart(day time.Time, hour int) time.Time {
	year, month, d := day.Date()
	return time.Date(year, month, d, hour, 0, 0, 0, day.Location())
}
