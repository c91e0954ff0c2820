package repository

import (
	"context"

	"github.com/Dkharvari1/GymPlusPlus-sub000/internal/models"
)

type FoodRepository struct {
	db DBTX
}

func NewFoodRepository(db DBTX) *FoodRepository {
	return &FoodRepository{db: db}
}

// ListAll returns the whole catalog in insertion order. The catalog is seed
// data and small; the recommender scores it in memory.
func (r *FoodRepository) ListAll(ctx context.Context) ([]models.Food, error) {
	query := `
		SELECT id, name, calories, protein, carbs, fat, fiber
		FROM foods
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foods := make([]models.Food, 0)
	for rows.Next() {
		var food models.Food
		if err := rows.Scan(
			&food.ID,
			&food.Name,
			&food.Calories,
			&food.Protein,
			&food.Carbs,
			&food.Fat,
			&food.Fiber,
		); err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return foods, nil
}
