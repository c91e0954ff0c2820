package repository

import (
	"context"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

type CreateBookingInput struct {
	UserID int64
	GymID  int64
	Type   string
	Title  string
	Start  time.Time
	End    time.Time
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(
	ctx context.Context,
	input CreateBookingInput,
) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, gym_id, type, title, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, gym_id, type, title, start_at, end_at, created_at
	`

	var booking models.Booking
	err := r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.GymID,
		input.Type,
		input.Title,
		input.Start,
		input.End,
	).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.GymID,
		&booking.Type,
		&booking.Title,
		&booking.Start,
		&booking.End,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListForDay returns every booking for (gym, type) whose start falls within
// [dayStart, dayStart+24h).
func (r *BookingRepository) ListForDay(
	ctx context.Context,
	gymID int64,
	bookingType string,
	dayStart time.Time,
) ([]models.Booking, error) {
	query := `
		SELECT id, user_id, gym_id, type, title, start_at, end_at, created_at
		FROM bookings
		WHERE gym_id = $1
		  AND type = $2
		  AND start_at >= $3
		  AND start_at < $4
		ORDER BY start_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, gymID, bookingType, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.GymID,
			&booking.Type,
			&booking.Title,
			&booking.Start,
			&booking.End,
			&booking.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

// ExistsAt is the point check: an equality lookup at the exact start instant,
// not an overlap query. Slots are hour-aligned with a fixed duration, so an
// exact-instant match is the only possible collision.
func (r *BookingRepository) ExistsAt(
	ctx context.Context,
	gymID int64,
	bookingType string,
	start time.Time,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE gym_id = $1
			  AND type = $2
			  AND start_at = $3
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, gymID, bookingType, start).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *BookingRepository) ListByUser(
	ctx context.Context,
	userID int64,
	upcomingOnly bool,
) ([]models.Booking, error) {
	query := `
		SELECT id, user_id, gym_id, type, title, start_at, end_at, created_at
		FROM bookings
		WHERE user_id = $1
	`
	if upcomingOnly {
		query += " AND end_at > NOW()"
	}
	query += " ORDER BY start_at ASC, id ASC"

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.GymID,
			&booking.Type,
			&booking.Title,
			&booking.Start,
			&booking.End,
			&booking.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) CountForDay(
	ctx context.Context,
	gymID int64,
	dayStart time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE gym_id = $1
		  AND start_at >= $2
		  AND start_at < $3
	`
	var count int
	if err := r.db.QueryRow(ctx, query, gymID, dayStart, dayStart.Add(24*time.Hour)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
