package models

import "time"

// SpecialClosingDay closes a shop for a whole calendar date regardless of its
// recurring business hours.
type SpecialClosingDay struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_shop_closing_date" json:"barbershop_id"`

	Date   string `gorm:"size:10;uniqueIndex:idx_shop_closing_date" json:"date"` // "2006-01-02"
	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
