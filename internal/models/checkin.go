package models

import "time"

type CheckIn struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	GymID       int64     `json:"gym_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
}
