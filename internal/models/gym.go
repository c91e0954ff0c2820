package models

import "time"

type Gym struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardSummary struct {
	GymID         int64 `json:"gym_id"`
	MemberCount   int   `json:"member_count"`
	CheckInsToday int   `json:"check_ins_today"`
	BookingsToday int   `json:"bookings_today"`
}

type MembershipPackage struct {
	ID           int64     `json:"id"`
	GymID        int64     `json:"gym_id"`
	Name         string    `json:"name"`
	PriceMonthly float64   `json:"price_monthly"`
	Perks        *[]string `json:"perks"`
	CreatedAt    time.Time `json:"created_at"`
}
