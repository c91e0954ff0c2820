package models

import "time"

type MemberProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	FullName           *string   `json:"full_name"`
	AvatarURL          *string   `json:"avatar_url"`
	Age                *int      `json:"age"`
	Gender             *string   `json:"gender"`
	HeightCM           *float64  `json:"height_cm"`
	WeightKG           *float64  `json:"weight_kg"`
	Goals              *[]string `json:"goals"`
	Diet               *string   `json:"diet"`
	GymID              *int64    `json:"gym_id"`
	PackageID          *int64    `json:"package_id"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
