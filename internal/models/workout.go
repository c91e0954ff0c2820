package models

type Workout struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	MuscleGroup string  `json:"muscle_group"`
	Difficulty  string  `json:"difficulty"`
	Equipment   *string `json:"equipment"`
	Description *string `json:"description"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
