package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

type WorkoutListFilter struct {
	MuscleGroup string
	Search      string
	Offset      int
	Limit       int
}

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) List(
	ctx context.Context,
	filter WorkoutListFilter,
) ([]models.Workout, int, error) {
	args := []any{}
	whereParts := []string{"TRUE"}

	if muscle := strings.TrimSpace(filter.MuscleGroup); muscle != "" {
		args = append(args, muscle)
		whereParts = append(whereParts, fmt.Sprintf("muscle_group = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		whereParts = append(whereParts, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	where := strings.Join(whereParts, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM workouts WHERE %s`, where)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT id, name, muscle_group, difficulty, equipment, description
		FROM workouts
		WHERE %s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		var workout models.Workout
		if err := rows.Scan(
			&workout.ID,
			&workout.Name,
			&workout.MuscleGroup,
			&workout.Difficulty,
			&workout.Equipment,
			&workout.Description,
		); err != nil {
			return nil, 0, err
		}
		workouts = append(workouts, workout)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return workouts, total, nil
}
