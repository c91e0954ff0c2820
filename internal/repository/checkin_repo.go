package repository

import (
	"context"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

type CheckInRepository struct {
	db DBTX
}

func NewCheckInRepository(db DBTX) *CheckInRepository {
	return &CheckInRepository{db: db}
}

func (r *CheckInRepository) Create(
	ctx context.Context,
	userID int64,
	gymID int64,
) (*models.CheckIn, error) {
	query := `
		INSERT INTO check_ins (user_id, gym_id)
		VALUES ($1, $2)
		RETURNING id, user_id, gym_id, checked_in_at
	`
	var checkIn models.CheckIn
	err := r.db.QueryRow(ctx, query, userID, gymID).
		Scan(&checkIn.ID, &checkIn.UserID, &checkIn.GymID, &checkIn.CheckedInAt)
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (r *CheckInRepository) ListForDay(
	ctx context.Context,
	gymID int64,
	dayStart time.Time,
) ([]models.CheckIn, error) {
	query := `
		SELECT id, user_id, gym_id, checked_in_at
		FROM check_ins
		WHERE gym_id = $1
		  AND checked_in_at >= $2
		  AND checked_in_at < $3
		ORDER BY checked_in_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, gymID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkIns := make([]models.CheckIn, 0)
	for rows.Next() {
		var checkIn models.CheckIn
		if err := rows.Scan(
			&checkIn.ID,
			&checkIn.UserID,
			&checkIn.GymID,
			&checkIn.CheckedInAt,
		); err != nil {
			return nil, err
		}
		checkIns = append(checkIns, checkIn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return checkIns, nil
}

func (r *CheckInRepository) CountForDay(
	ctx context.Context,
	gymID int64,
	dayStart time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM check_ins
		WHERE gym_id = $1
		  AND checked_in_at >= $2
		  AND checked_in_at < $3
	`
	var count int
	if err := r.db.QueryRow(ctx, query, gymID, dayStart, dayStart.Add(24*time.Hour)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
