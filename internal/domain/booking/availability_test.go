package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chairtime/chairtime-api/internal/models"
)

func slotByTime(t *testing.T, slots []Slot, tm string) Slot {
	t.Helper()
	s := FindSlot(slots, tm)
	require.NotNil(t, s, "no slot at %s", tm)
	return *s
}

func TestResolveDaySlots(t *testing.T) {
	window := DayWindow{Open: true, OpeningTime: "09:00", ClosingTime: "12:00"}

	t.Run("multi-slot run blocks every covered start", func(t *testing.T) {
		// A 90-minute selection against a 10:00-11:00 booking and a 12:00
		// close leaves no bookable start: 09:00-10:00 starts run into the
		// reserved hour, 10:30 sits inside it, and 11:00+ cannot finish
		// before closing.
		existing := []models.Booking{
			{AppointmentTime: "10:00", TotalDurationMin: 60},
		}

		slots := ResolveDaySlots(window, existing, 90, 30, queryNow, futureDate)
		require.Len(t, slots, 6)

		for _, s := range slots {
			assert.False(t, s.Available, "slot %s", s.Time)
		}

		// A 30-minute selection still books around the reserved hour.
		single := ResolveDaySlots(window, existing, 30, 30, queryNow, futureDate)
		assert.True(t, slotByTime(t, single, "09:00").Available)
		assert.True(t, slotByTime(t, single, "09:30").Available)
		assert.False(t, slotByTime(t, single, "10:00").Available)
		assert.False(t, slotByTime(t, single, "10:30").Available)
		assert.True(t, slotByTime(t, single, "11:00").Available)
		assert.True(t, slotByTime(t, single, "11:30").Available)
	})

	t.Run("service end time reflects the full run", func(t *testing.T) {
		slots := ResolveDaySlots(window, nil, 90, 30, queryNow, futureDate)

		s := slotByTime(t, slots, "09:00")
		assert.Equal(t, "09:30", s.EndTime)
		assert.Equal(t, "10:30", s.ServiceEndTime)
	})

	t.Run("run past closing never fits", func(t *testing.T) {
		slots := ResolveDaySlots(window, nil, 90, 30, queryNow, futureDate)

		// Last start that still finishes by 12:00 is 10:30.
		assert.True(t, slotByTime(t, slots, "10:30").Available)
		assert.False(t, slotByTime(t, slots, "11:00").Available)
		assert.False(t, slotByTime(t, slots, "11:30").Available)
	})

	t.Run("empty selection previews single slots", func(t *testing.T) {
		existing := []models.Booking{
			{AppointmentTime: "09:30", TotalDurationMin: 30},
		}

		slots := ResolveDaySlots(window, existing, 0, 30, queryNow, futureDate)

		assert.True(t, slotByTime(t, slots, "09:00").Available)
		assert.False(t, slotByTime(t, slots, "09:30").Available)
		assert.True(t, slotByTime(t, slots, "10:00").Available)
		assert.True(t, slotByTime(t, slots, "11:30").Available)
	})

	t.Run("off-grid booking blocks every slot it touches", func(t *testing.T) {
		// A 09:45 row left over from a coarser schedule covers parts of
		// both the 09:30 and 10:15 half hours; 10:00 must stay blocked or
		// availability would offer a start the ledger rejects.
		existing := []models.Booking{
			{AppointmentTime: "09:45", TotalDurationMin: 30},
		}

		slots := ResolveDaySlots(window, existing, 30, 30, queryNow, futureDate)

		assert.True(t, slotByTime(t, slots, "09:00").Available)
		assert.False(t, slotByTime(t, slots, "09:30").Available)
		assert.False(t, slotByTime(t, slots, "10:00").Available)
		assert.True(t, slotByTime(t, slots, "10:30").Available)
	})

	t.Run("past slots are never available", func(t *testing.T) {
		// 10:00 on the query date itself.
		midday := futureDate.Add(10 * time.Hour)
		slots := ResolveDaySlots(window, nil, 30, 30, midday, futureDate)

		assert.False(t, slotByTime(t, slots, "09:30").Available)
		assert.True(t, slotByTime(t, slots, "10:00").Available)
	})
}

func TestOverlapsExisting(t *testing.T) {
	existing := []models.Booking{
		{AppointmentTime: "10:00", TotalDurationMin: 60},
	}

	tests := []struct {
		name     string
		start    string
		duration int
		overlap  bool
	}{
		{"ends as other starts", "09:00", 60, false},
		{"runs into the other", "09:30", 60, true},
		{"same start", "10:00", 30, true},
		{"inside the other", "10:30", 30, true},
		{"starts as other ends", "11:00", 30, false},
		{"long run spanning the other", "09:30", 90, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlapsExisting(existing, tt.start, tt.duration, 30)
			assert.Equal(t, tt.overlap, got)
		})
	}

	t.Run("unparseable start is treated as conflicting", func(t *testing.T) {
		assert.True(t, OverlapsExisting(nil, "not-a-time", 30, 30))
	})
}

func TestFindSlot(t *testing.T) {
	slots := GenerateSlots(DayWindow{Open: true, OpeningTime: "09:00", ClosingTime: "10:00"}, 30, queryNow, futureDate)

	assert.NotNil(t, FindSlot(slots, "09:30"))
	assert.Nil(t, FindSlot(slots, "09:15"))
	assert.Nil(t, FindSlot(slots, "10:00"))
}
