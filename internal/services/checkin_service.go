package services

import (
	"context"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type checkInStore interface {
	Create(ctx context.Context, userID int64, gymID int64) (*models.CheckIn, error)
	ListForDay(ctx context.Context, gymID int64, dayStart time.Time) ([]models.CheckIn, error)
}

type memberGymReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.MemberProfile, error)
}

type operatorGymReader interface {
	OperatorGymID(ctx context.Context, userID int64) (int64, error)
}

type codeEntry struct {
	userID int64
	gymID  int64
}

// CheckInService issues short-lived QR codes to members and redeems them when
// an operator scans one at the front desk. Codes are single use and live only
// in process memory; an expired or unknown code is simply invalid.
type CheckInService struct {
	checkInRepo checkInStore
	profileRepo memberGymReader
	gymRepo     operatorGymReader
	codes       *cache.Cache
	ttl         time.Duration
}

func NewCheckInService(
	checkInRepo checkInStore,
	profileRepo memberGymReader,
	gymRepo operatorGymReader,
	codeTTL time.Duration,
) *CheckInService {
	return &CheckInService{
		checkInRepo: checkInRepo,
		profileRepo: profileRepo,
		gymRepo:     gymRepo,
		codes:       cache.New(codeTTL, 2*codeTTL),
		ttl:         codeTTL,
	}
}

func (s *CheckInService) IssueCode(
	ctx context.Context,
	userID int64,
) (string, time.Time, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	if profile.GymID == nil {
		return "", time.Time{}, ErrNoGymMembership
	}

	code := uuid.NewString()
	s.codes.Set(code, codeEntry{userID: userID, gymID: *profile.GymID}, cache.DefaultExpiration)
	return code, time.Now().Add(s.ttl), nil
}

func (s *CheckInService) Redeem(
	ctx context.Context,
	operatorID int64,
	code string,
) (*models.CheckIn, error) {
	gymID, err := s.gymRepo.OperatorGymID(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	value, found := s.codes.Get(code)
	if !found {
		return nil, ErrInvalidCode
	}
	entry := value.(codeEntry)
	if entry.gymID != gymID {
		return nil, ErrWrongGym
	}
	s.codes.Delete(code)

	return s.checkInRepo.Create(ctx, entry.userID, gymID)
}

func (s *CheckInService) ListToday(
	ctx context.Context,
	operatorID int64,
	now time.Time,
) ([]models.CheckIn, error) {
	gymID, err := s.gymRepo.OperatorGymID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	return s.checkInRepo.ListForDay(ctx, gymID, startOfDay(now))
}
