package models

import "time"

// BusinessHour holds the recurring weekly window of a shop. Exactly one row
// per (shop, weekday); rows are updated in place, never deleted.
type BusinessHour struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_shop_weekday" json:"barbershop_id"`

	Weekday int `gorm:"uniqueIndex:idx_shop_weekday" json:"weekday"` // 0=Sunday

	OpeningTime string `gorm:"size:5" json:"opening_time"` // "15:04"
	ClosingTime string `gorm:"size:5" json:"closing_time"`
	IsClosed    bool   `gorm:"default:false" json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
