package services

import (
	"context"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

type dashboardGymReader interface {
	OperatorGymID(ctx context.Context, userID int64) (int64, error)
	CountMembers(ctx context.Context, gymID int64) (int, error)
}

type dashboardCheckInReader interface {
	CountForDay(ctx context.Context, gymID int64, dayStart time.Time) (int, error)
}

type dashboardBookingReader interface {
	CountForDay(ctx context.Context, gymID int64, dayStart time.Time) (int, error)
}

type DashboardService struct {
	gymRepo     dashboardGymReader
	checkInRepo dashboardCheckInReader
	bookingRepo dashboardBookingReader
}

func NewDashboardService(
	gymRepo dashboardGymReader,
	checkInRepo dashboardCheckInReader,
	bookingRepo dashboardBookingReader,
) *DashboardService {
	return &DashboardService{
		gymRepo:     gymRepo,
		checkInRepo: checkInRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *DashboardService) Summary(
	ctx context.Context,
	operatorID int64,
	now time.Time,
) (*models.DashboardSummary, error) {
	gymID, err := s.gymRepo.OperatorGymID(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	members, err := s.gymRepo.CountMembers(ctx, gymID)
	if err != nil {
		return nil, err
	}

	dayStart := startOfDay(now)
	checkIns, err := s.checkInRepo.CountForDay(ctx, gymID, dayStart)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.CountForDay(ctx, gymID, dayStart)
	if err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		GymID:         gymID,
		MemberCount:   members,
		CheckInsToday: checkIns,
		BookingsToday: bookings,
	}, nil
}
