package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/models"
)

func weekOpen(shopID uint) []models.BusinessHour {
	return DefaultBusinessHours(shopID, int(time.Sunday))
}

func TestResolveDayWindow(t *testing.T) {
	// 2025-12-22 is a Monday.
	monday := time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC)

	t.Run("open weekday uses configured hours", func(t *testing.T) {
		w, err := ResolveDayWindow(weekOpen(1), nil, monday)
		assert.NoError(t, err)
		assert.True(t, w.Open)
		assert.Equal(t, "09:00", w.OpeningTime)
		assert.Equal(t, "17:00", w.ClosingTime)
	})

	t.Run("rest weekday is closed", func(t *testing.T) {
		w, err := ResolveDayWindow(weekOpen(1), nil, sunday)
		assert.NoError(t, err)
		assert.False(t, w.Open)
	})

	t.Run("closure overrides an open weekday", func(t *testing.T) {
		// Christmas 2025 falls on a Thursday the shop would otherwise work.
		christmas := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
		closure := &models.SpecialClosingDay{
			BarbershopID: 1,
			Date:         "2025-12-25",
			Reason:       "holiday",
		}

		w, err := ResolveDayWindow(weekOpen(1), closure, christmas)
		assert.NoError(t, err)
		assert.False(t, w.Open)
	})

	t.Run("no hours configured is an error, not silently open", func(t *testing.T) {
		_, err := ResolveDayWindow(nil, nil, monday)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeHoursNotConfigured))
	})

	t.Run("missing weekday row means closed", func(t *testing.T) {
		hours := []models.BusinessHour{
			{BarbershopID: 1, Weekday: int(time.Tuesday), OpeningTime: "10:00", ClosingTime: "18:00"},
		}
		w, err := ResolveDayWindow(hours, nil, monday)
		assert.NoError(t, err)
		assert.False(t, w.Open)
	})
}

func TestDefaultBusinessHours(t *testing.T) {
	hours := DefaultBusinessHours(7, int(time.Monday))

	assert.Len(t, hours, 7)
	for _, h := range hours {
		assert.Equal(t, uint(7), h.BarbershopID)
		assert.Equal(t, h.Weekday == int(time.Monday), h.IsClosed)
		assert.Equal(t, DefaultOpeningTime, h.OpeningTime)
		assert.Equal(t, DefaultClosingTime, h.ClosingTime)
	}
}
