package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

type stubReserver struct {
	taken      map[int]struct{}
	takenErr   error
	booking    *models.Booking
	reserveErr error
	lastInput  ReserveInput
}

func (s *stubReserver) TakenHours(_ context.Context, _ int64, _ string, _ time.Time) (map[int]struct{}, error) {
	if s.takenErr != nil {
		return nil, s.takenErr
	}
	return s.taken, nil
}

func (s *stubReserver) Reserve(_ context.Context, _ int64, input ReserveInput) (*models.Booking, error) {
	s.lastInput = input
	if s.reserveErr != nil {
		return nil, s.reserveErr
	}
	return s.booking, nil
}

func flowAtHourSelection(t *testing.T, service *stubReserver) *ReservationFlow {
	t.Helper()
	flow := NewReservationFlow(service, 42, 1)
	if err := flow.SelectType(models.BookingTypeBasketball); err != nil {
		t.Fatalf("SelectType: %v", err)
	}
	if err := flow.SelectDate(context.Background(), day(2026, time.September, 14)); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	return flow
}

func TestFlowHappyPath(t *testing.T) {
	service := &stubReserver{
		taken: map[int]struct{}{9: {}, 14: {}},
		booking: &models.Booking{
			ID:    5,
			Start: day(2026, time.September, 14).Add(10 * time.Hour),
		},
	}
	flow := NewReservationFlow(service, 42, 1)

	if flow.State() != FlowIdle {
		t.Fatalf("new flow in state %q", flow.State())
	}
	if err := flow.SelectType(models.BookingTypeBasketball); err != nil {
		t.Fatalf("SelectType: %v", err)
	}
	if flow.State() != FlowDateSelection {
		t.Fatalf("expected date selection, got %q", flow.State())
	}
	if err := flow.SelectDate(context.Background(), day(2026, time.September, 14)); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if flow.State() != FlowHourSelection {
		t.Fatalf("expected hour selection, got %q", flow.State())
	}
	if len(flow.TakenHours()) != 2 {
		t.Fatalf("expected 2 taken hours, got %v", flow.TakenHours())
	}

	booking, err := flow.ConfirmHour(context.Background(), 10)
	if err != nil {
		t.Fatalf("ConfirmHour: %v", err)
	}
	if booking.ID != 5 {
		t.Fatalf("unexpected booking %+v", booking)
	}
	if flow.State() != FlowIdle {
		t.Fatalf("expected idle after commit, got %q", flow.State())
	}
	if service.lastInput.Hour != 10 || service.lastInput.Type != models.BookingTypeBasketball {
		t.Fatalf("unexpected reserve input %+v", service.lastInput)
	}
}

func TestFlowRejectsOutOfOrderCalls(t *testing.T) {
	service := &stubReserver{taken: map[int]struct{}{}}
	flow := NewReservationFlow(service, 42, 1)

	if err := flow.SelectDate(context.Background(), day(2026, time.September, 14)); !errors.Is(err, ErrFlowState) {
		t.Fatalf("SelectDate from idle: expected ErrFlowState, got %v", err)
	}
	if _, err := flow.ConfirmHour(context.Background(), 10); !errors.Is(err, ErrFlowState) {
		t.Fatalf("ConfirmHour from idle: expected ErrFlowState, got %v", err)
	}

	if err := flow.SelectType(models.BookingTypeTrainer); err != nil {
		t.Fatalf("SelectType: %v", err)
	}
	if err := flow.SelectType(models.BookingTypeTrainer); !errors.Is(err, ErrFlowState) {
		t.Fatalf("second SelectType: expected ErrFlowState, got %v", err)
	}
}

func TestFlowSelectTypeRejectsUnknownResource(t *testing.T) {
	flow := NewReservationFlow(&stubReserver{}, 42, 1)
	if err := flow.SelectType("sauna"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if flow.State() != FlowIdle {
		t.Fatalf("invalid type must not advance, state %q", flow.State())
	}
}

func TestFlowSelectDateFailureStaysInDateSelection(t *testing.T) {
	service := &stubReserver{takenErr: errors.New("db down")}
	flow := NewReservationFlow(service, 42, 1)
	if err := flow.SelectType(models.BookingTypeBasketball); err != nil {
		t.Fatalf("SelectType: %v", err)
	}

	if err := flow.SelectDate(context.Background(), day(2026, time.September, 14)); err == nil {
		t.Fatal("expected error")
	}
	if flow.State() != FlowDateSelection {
		t.Fatalf("expected date selection after failure, got %q", flow.State())
	}

	// Retry succeeds once the store recovers.
	service.takenErr = nil
	service.taken = map[int]struct{}{8: {}}
	if err := flow.SelectDate(context.Background(), day(2026, time.September, 14)); err != nil {
		t.Fatalf("retry SelectDate: %v", err)
	}
	if flow.State() != FlowHourSelection {
		t.Fatalf("expected hour selection, got %q", flow.State())
	}
}

func TestFlowConflictReturnsToHourSelection(t *testing.T) {
	service := &stubReserver{
		taken:      map[int]struct{}{9: {}},
		reserveErr: ErrSlotTaken,
	}
	flow := flowAtHourSelection(t, service)

	_, err := flow.ConfirmHour(context.Background(), 10)
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if flow.State() != FlowHourSelection {
		t.Fatalf("expected hour selection after conflict, got %q", flow.State())
	}
	if _, ok := flow.TakenHours()[9]; !ok || len(flow.TakenHours()) != 1 {
		t.Fatalf("taken hours changed on conflict: %v", flow.TakenHours())
	}

	// The member can pick another hour without reloading.
	service.reserveErr = nil
	service.booking = &models.Booking{ID: 7}
	if _, err := flow.ConfirmHour(context.Background(), 11); err != nil {
		t.Fatalf("second ConfirmHour: %v", err)
	}
	if flow.State() != FlowIdle {
		t.Fatalf("expected idle, got %q", flow.State())
	}
}

func TestFlowStoreFailureAlsoReturnsToHourSelection(t *testing.T) {
	service := &stubReserver{
		taken:      map[int]struct{}{},
		reserveErr: errors.New("connection reset"),
	}
	flow := flowAtHourSelection(t, service)

	_, err := flow.ConfirmHour(context.Background(), 10)
	if err == nil || errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected a plain failure, got %v", err)
	}
	if flow.State() != FlowHourSelection {
		t.Fatalf("expected hour selection after failure, got %q", flow.State())
	}
}

func TestFlowCancelResetsFromAnyState(t *testing.T) {
	service := &stubReserver{taken: map[int]struct{}{9: {}}}
	flow := flowAtHourSelection(t, service)

	flow.Cancel()

	if flow.State() != FlowIdle {
		t.Fatalf("expected idle after cancel, got %q", flow.State())
	}
	if len(flow.TakenHours()) != 0 {
		t.Fatalf("expected cleared taken hours, got %v", flow.TakenHours())
	}
	if err := flow.SelectType(models.BookingTypeMassage); err != nil {
		t.Fatalf("SelectType after cancel: %v", err)
	}
}

func TestFlowFoldsMatchingBookingEvents(t *testing.T) {
	service := &stubReserver{taken: map[int]struct{}{9: {}}}
	flow := flowAtHourSelection(t, service)
	target := day(2026, time.September, 14)

	flow.HandleBookingCreated(models.Booking{
		GymID: 1,
		Type:  models.BookingTypeBasketball,
		Start: target.Add(12 * time.Hour),
	})

	if _, ok := flow.TakenHours()[12]; !ok {
		t.Fatalf("matching event not folded in: %v", flow.TakenHours())
	}
}

func TestFlowIgnoresForeignBookingEvents(t *testing.T) {
	service := &stubReserver{taken: map[int]struct{}{}}
	flow := flowAtHourSelection(t, service)
	target := day(2026, time.September, 14)

	flow.HandleBookingCreated(models.Booking{GymID: 2, Type: models.BookingTypeBasketball, Start: target.Add(12 * time.Hour)})
	flow.HandleBookingCreated(models.Booking{GymID: 1, Type: models.BookingTypeMassage, Start: target.Add(13 * time.Hour)})
	flow.HandleBookingCreated(models.Booking{GymID: 1, Type: models.BookingTypeBasketball, Start: target.AddDate(0, 0, 1).Add(12 * time.Hour)})

	if len(flow.TakenHours()) != 0 {
		t.Fatalf("foreign events folded in: %v", flow.TakenHours())
	}
}

func TestFlowWatchStopsOnClosedChannel(t *testing.T) {
	service := &stubReserver{taken: map[int]struct{}{}}
	flow := flowAtHourSelection(t, service)
	target := day(2026, time.September, 14)

	events := make(chan models.Booking, 1)
	events <- models.Booking{
		GymID: 1,
		Type:  models.BookingTypeBasketball,
		Start: target.Add(15 * time.Hour),
	}
	close(events)

	done := make(chan struct{})
	go func() {
		flow.Watch(context.Background(), events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop on channel close")
	}
	if _, ok := flow.TakenHours()[15]; !ok {
		t.Fatalf("event delivered via channel not folded in: %v", flow.TakenHours())
	}
}
