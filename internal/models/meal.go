package models

import "time"

type MealEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     *float64  `json:"carbs"`
	Fat       *float64  `json:"fat"`
	EatenAt   time.Time `json:"eaten_at"`
	CreatedAt time.Time `json:"created_at"`
}

type MealDaySummary struct {
	Entries       []MealEntry `json:"entries"`
	TotalCalories float64     `json:"total_calories"`
	TotalProtein  float64     `json:"total_protein"`
}
