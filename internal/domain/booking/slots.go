package booking

import (
	"fmt"
	"time"
)

const DefaultGranularityMin = 30

// Slot is a derived value, recomputed on every availability query and never
// stored. EndTime is the fixed slot boundary; ServiceEndTime is the true
// appointment end for the selected services. The two differ whenever the
// service run is longer than one slot.
type Slot struct {
	Time           string `json:"time"`
	EndTime        string `json:"end_time"`
	ServiceEndTime string `json:"service_end_time"`
	Available      bool   `json:"available"`
	IsPast         bool   `json:"is_past"`
}

const dateLayout = "2006-01-02"

func minutesOf(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// GenerateSlots expands an operating window into consecutive slots of
// granularityMin minutes. A trailing interval that would run past closing is
// dropped. Slots starting before now on the query date are marked past; on a
// date fully in the past every slot is past. Pure, no I/O.
func GenerateSlots(window DayWindow, granularityMin int, now, date time.Time) []Slot {
	if !window.Open {
		return nil
	}
	if granularityMin <= 0 {
		granularityMin = DefaultGranularityMin
	}

	openMin, err := minutesOf(window.OpeningTime)
	if err != nil {
		return nil
	}
	closeMin, err := minutesOf(window.ClosingTime)
	if err != nil {
		return nil
	}

	nowDate := now.Format(dateLayout)
	queryDate := date.Format(dateLayout)

	pastDay := queryDate < nowDate
	sameDay := queryDate == nowDate
	nowMin := now.Hour()*60 + now.Minute()

	var slots []Slot
	for cur := openMin; cur+granularityMin <= closeMin; cur += granularityMin {
		isPast := pastDay || (sameDay && cur < nowMin)
		slots = append(slots, Slot{
			Time:    formatMinutes(cur),
			EndTime: formatMinutes(cur + granularityMin),
			IsPast:  isPast,
		})
	}
	return slots
}
