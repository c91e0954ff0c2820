package models

// Food is a catalog entry. Calories and protein are always present;
// the remaining macros may be missing from the seed data and are treated
// as zero when scoring.
type Food struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Fiber    *float64 `json:"fiber"`
}

type FoodWithScore struct {
	Food
	Score float64 `json:"score"`
}
