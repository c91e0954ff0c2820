package repository

import (
	"context"
	"time"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

type CreateMealInput struct {
	UserID   int64
	Name     string
	Calories float64
	Protein  float64
	Carbs    *float64
	Fat      *float64
	EatenAt  time.Time
}

type MealRepository struct {
	db DBTX
}

func NewMealRepository(db DBTX) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) Create(
	ctx context.Context,
	input CreateMealInput,
) (*models.MealEntry, error) {
	query := `
		INSERT INTO meal_entries (user_id, name, calories, protein, carbs, fat, eaten_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, name, calories, protein, carbs, fat, eaten_at, created_at
	`

	var entry models.MealEntry
	err := r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.Name,
		input.Calories,
		input.Protein,
		input.Carbs,
		input.Fat,
		input.EatenAt,
	).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Name,
		&entry.Calories,
		&entry.Protein,
		&entry.Carbs,
		&entry.Fat,
		&entry.EatenAt,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *MealRepository) ListForDay(
	ctx context.Context,
	userID int64,
	dayStart time.Time,
) ([]models.MealEntry, error) {
	query := `
		SELECT id, user_id, name, calories, protein, carbs, fat, eaten_at, created_at
		FROM meal_entries
		WHERE user_id = $1
		  AND eaten_at >= $2
		  AND eaten_at < $3
		ORDER BY eaten_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, userID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.MealEntry, 0)
	for rows.Next() {
		var entry models.MealEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Name,
			&entry.Calories,
			&entry.Protein,
			&entry.Carbs,
			&entry.Fat,
			&entry.EatenAt,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
