package booking

import (
	"time"

	"github.com/chairtime/chairtime-api/internal/models"
)

// RequiredSlots is the number of consecutive slots a service run of
// totalDurationMin occupies: ceil(duration/granularity), never below one.
// An empty selection (duration 0) previews the day as single slots.
func RequiredSlots(totalDurationMin, granularityMin int) int {
	if granularityMin <= 0 {
		granularityMin = DefaultGranularityMin
	}
	if totalDurationMin <= 0 {
		return 1
	}
	n := (totalDurationMin + granularityMin - 1) / granularityMin
	if n < 1 {
		n = 1
	}
	return n
}

// slotInterval is a half-open range of slot indices.
type slotInterval struct {
	start int
	end   int
}

func reservedIntervals(bookings []models.Booking, openMin, granularityMin int) []slotInterval {
	intervals := make([]slotInterval, 0, len(bookings))
	for _, b := range bookings {
		startMin, err := minutesOf(b.AppointmentTime)
		if err != nil {
			continue
		}
		// Bookings made under an earlier schedule may sit off the grid;
		// flooring the start and ceiling the end block every slot the run
		// touches, matching the insert-time overlap check.
		endMin := startMin + RequiredSlots(b.TotalDurationMin, granularityMin)*granularityMin
		intervals = append(intervals, slotInterval{
			start: floorDiv(startMin-openMin, granularityMin),
			end:   ceilDiv(endMin-openMin, granularityMin),
		})
	}
	return intervals
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

func intersectsAny(intervals []slotInterval, start, end int) bool {
	for _, iv := range intervals {
		if start < iv.end && end > iv.start {
			return true
		}
	}
	return false
}

// ResolveDaySlots filters the generated slots of a window against the active
// bookings of the day and the duration required by the selected services.
// Slots come back in chronological order with availability annotated; a slot
// is bookable only when the full required run fits before closing, collides
// with no reserved interval, and is not in the past.
func ResolveDaySlots(
	window DayWindow,
	bookings []models.Booking,
	totalDurationMin int,
	granularityMin int,
	now, date time.Time,
) []Slot {

	if granularityMin <= 0 {
		granularityMin = DefaultGranularityMin
	}

	slots := GenerateSlots(window, granularityMin, now, date)
	if len(slots) == 0 {
		return slots
	}

	openMin, err := minutesOf(window.OpeningTime)
	if err != nil {
		return nil
	}

	required := RequiredSlots(totalDurationMin, granularityMin)
	reserved := reservedIntervals(bookings, openMin, granularityMin)

	serviceLen := totalDurationMin
	if serviceLen <= 0 {
		serviceLen = granularityMin
	}

	for i := range slots {
		startMin := openMin + i*granularityMin
		slots[i].ServiceEndTime = formatMinutes(startMin + serviceLen)

		fits := i+required <= len(slots)
		free := !intersectsAny(reserved, i, i+required)

		slots[i].Available = fits && free && !slots[i].IsPast
	}

	return slots
}

// OverlapsExisting reports whether a booking starting at startTime for
// totalDurationMin would occupy a slot already reserved by any of the given
// active bookings. Used for the insert-time re-check inside the ledger
// transaction; bookings start on slot boundaries so minute ranges rounded to
// the granularity are equivalent to slot-index intervals.
func OverlapsExisting(
	existing []models.Booking,
	startTime string,
	totalDurationMin int,
	granularityMin int,
) bool {

	if granularityMin <= 0 {
		granularityMin = DefaultGranularityMin
	}

	startMin, err := minutesOf(startTime)
	if err != nil {
		return true
	}
	endMin := startMin + RequiredSlots(totalDurationMin, granularityMin)*granularityMin

	for _, b := range existing {
		otherStart, err := minutesOf(b.AppointmentTime)
		if err != nil {
			continue
		}
		otherEnd := otherStart + RequiredSlots(b.TotalDurationMin, granularityMin)*granularityMin
		if startMin < otherEnd && endMin > otherStart {
			return true
		}
	}
	return false
}

// FindSlot returns the slot starting at startTime, or nil when the start does
// not fall on the day's grid.
func FindSlot(slots []Slot, startTime string) *Slot {
	for i := range slots {
		if slots[i].Time == startTime {
			return &slots[i]
		}
	}
	return nil
}
