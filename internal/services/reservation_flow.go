package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

// Reservation wizard states. The flow only ever writes during Committing;
// cancelling from any state leaves nothing behind.
const (
	FlowIdle          = "idle"
	FlowDateSelection = "date_selection"
	FlowHourSelection = "hour_selection"
	FlowCommitting    = "committing"
)

var ErrFlowState = errors.New("operation not valid in current state")

type reserver interface {
	TakenHours(ctx context.Context, gymID int64, bookingType string, day time.Time) (map[int]struct{}, error)
	Reserve(ctx context.Context, userID int64, input ReserveInput) (*models.Booking, error)
}

// ReservationFlow drives one member's booking wizard: pick a resource type,
// pick a date, see which hours are taken, confirm a free hour. Booking
// creations from other clients arrive through HandleBookingCreated (or a
// channel via Watch) and keep the taken-hours set current between the load
// and the commit.
type ReservationFlow struct {
	mu sync.Mutex

	service reserver
	userID  int64
	gymID   int64

	state       string
	bookingType string
	day         time.Time
	takenHours  map[int]struct{}
}

func NewReservationFlow(service reserver, userID, gymID int64) *ReservationFlow {
	return &ReservationFlow{
		service:    service,
		userID:     userID,
		gymID:      gymID,
		state:      FlowIdle,
		takenHours: map[int]struct{}{},
	}
}

func (f *ReservationFlow) State() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *ReservationFlow) TakenHours() map[int]struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	taken := make(map[int]struct{}, len(f.takenHours))
	for hour := range f.takenHours {
		taken[hour] = struct{}{}
	}
	return taken
}

func (f *ReservationFlow) SelectType(bookingType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FlowIdle {
		return ErrFlowState
	}
	if !models.ValidBookingType(bookingType) {
		return ErrInvalidInput
	}

	f.bookingType = bookingType
	f.state = FlowDateSelection
	return nil
}

// SelectDate enters hour selection and loads the taken hours for the day.
// On a store failure the flow stays in date selection and the last-known
// taken-hours set is preserved; the caller may retry.
func (f *ReservationFlow) SelectDate(ctx context.Context, day time.Time) error {
	f.mu.Lock()
	if f.state != FlowDateSelection {
		f.mu.Unlock()
		return ErrFlowState
	}
	bookingType := f.bookingType
	gymID := f.gymID
	f.mu.Unlock()

	if day.IsZero() {
		return ErrInvalidInput
	}

	taken, err := f.service.TakenHours(ctx, gymID, bookingType, day)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FlowDateSelection {
		return ErrFlowState
	}
	f.day = day
	f.takenHours = taken
	f.state = FlowHourSelection
	return nil
}

// ConfirmHour commits the chosen hour. A conflict ("slot just taken") or a
// transient store failure returns the flow to hour selection with the
// taken-hours set untouched; success resets the wizard.
func (f *ReservationFlow) ConfirmHour(ctx context.Context, hour int) (*models.Booking, error) {
	f.mu.Lock()
	if f.state != FlowHourSelection {
		f.mu.Unlock()
		return nil, ErrFlowState
	}
	f.state = FlowCommitting
	input := ReserveInput{
		GymID: f.gymID,
		Type:  f.bookingType,
		Day:   f.day,
		Hour:  hour,
	}
	userID := f.userID
	f.mu.Unlock()

	booking, err := f.service.Reserve(ctx, userID, input)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = FlowHourSelection
		return nil, err
	}

	f.reset()
	return booking, nil
}

func (f *ReservationFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// HandleBookingCreated folds a booking-created event into the taken-hours
// set when it matches the slot grid currently on screen.
func (f *ReservationFlow) HandleBookingCreated(booking models.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FlowHourSelection && f.state != FlowCommitting {
		return
	}
	if booking.GymID != f.gymID || booking.Type != f.bookingType {
		return
	}
	if !startOfDay(booking.Start).Equal(startOfDay(f.day)) {
		return
	}
	f.takenHours[booking.Start.Hour()] = struct{}{}
}

// Watch consumes booking-created events until the channel closes or the
// context is cancelled.
func (f *ReservationFlow) Watch(ctx context.Context, events <-chan models.Booking) {
	for {
		select {
		case <-ctx.Done():
			return
		case booking, ok := <-events:
			if !ok {
				return
			}
			f.HandleBookingCreated(booking)
		}
	}
}

func (f *ReservationFlow) reset() {
	f.state = FlowIdle
	f.bookingType = ""
	f.day = time.Time{}
	f.takenHours = map[int]struct{}{}
}
