package booking

import (
	"time"

	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/models"
)

// DayWindow is the effective operating window of a shop for one date.
type DayWindow struct {
	Open        bool   `json:"open"`
	OpeningTime string `json:"opening_time,omitempty"`
	ClosingTime string `json:"closing_time,omitempty"`
}

const (
	DefaultOpeningTime = "09:00"
	DefaultClosingTime = "17:00"
)

// ResolveDayWindow combines the weekly recurring hours with a date-specific
// closure. A closure always wins. A shop with no hours configured at all is a
// configuration error for the owner, never a silent open state.
func ResolveDayWindow(
	hours []models.BusinessHour,
	closure *models.SpecialClosingDay,
	date time.Time,
) (DayWindow, error) {

	if closure != nil {
		return DayWindow{}, nil
	}

	if len(hours) == 0 {
		return DayWindow{}, httperr.ErrBusiness(httperr.CodeHoursNotConfigured)
	}

	weekday := int(date.Weekday())

	for _, h := range hours {
		if h.Weekday != weekday {
			continue
		}
		if h.IsClosed || h.OpeningTime == "" || h.ClosingTime == "" {
			return DayWindow{}, nil
		}
		return DayWindow{
			Open:        true,
			OpeningTime: h.OpeningTime,
			ClosingTime: h.ClosingTime,
		}, nil
	}

	// No row for this weekday: treated as closed, not as an error.
	return DayWindow{}, nil
}

// DefaultBusinessHours seeds the weekly schedule of a new shop: open
// 09:00-17:00 every day except the shop's rest weekday.
func DefaultBusinessHours(shopID uint, restWeekday int) []models.BusinessHour {
	hours := make([]models.BusinessHour, 0, 7)
	for wd := 0; wd < 7; wd++ {
		hours = append(hours, models.BusinessHour{
			BarbershopID: shopID,
			Weekday:      wd,
			OpeningTime:  DefaultOpeningTime,
			ClosingTime:  DefaultClosingTime,
			IsClosed:     wd == restWeekday,
		})
	}
	return hours
}
