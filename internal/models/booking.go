package models

import "time"

const (
	BookingTypeTrainer     = "trainer"
	BookingTypeBasketball  = "basketball"
	BookingTypePickleball  = "pickleball"
	BookingTypeRacquetball = "racquetball"
	BookingTypeMassage     = "massage"
)

// SlotDuration is fixed: every booking occupies exactly one hour.
const SlotDuration = time.Hour

var bookingTitles = map[string]string{
	BookingTypeTrainer:     "Personal Training Session",
	BookingTypeBasketball:  "Basketball Court",
	BookingTypePickleball:  "Pickleball Court",
	BookingTypeRacquetball: "Racquetball Court",
	BookingTypeMassage:     "Massage Appointment",
}

func ValidBookingType(bookingType string) bool {
	_, ok := bookingTitles[bookingType]
	return ok
}

// BookingTitle returns the display label derived from the booking type.
func BookingTitle(bookingType string) string {
	return bookingTitles[bookingType]
}

type Booking struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	GymID     int64     `json:"gym_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	CreatedAt time.Time `json:"created_at"`
}
