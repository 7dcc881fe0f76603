package models

import "time"

// Feedback is written once per completed booking and never updated.
type Feedback struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"uniqueIndex;not null" json:"booking_id"`

	Rating            int    `gorm:"not null" json:"rating"` // 1..5
	ServiceRating     int    `json:"service_rating"`
	PunctualityRating int    `json:"punctuality_rating"`
	ValueRating       int    `json:"value_rating"`
	Comment           string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
