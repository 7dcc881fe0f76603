package booking

import (
	"fmt"
	"math"
	"time"

	"github.com/chairtime/chairtime-api/internal/models"
)

// RefundPolicy decides refund eligibility from cancellation timing. Full
// refund when cancelled more than FullHours before the appointment, a
// PartialPercent refund when more than PartialHours before, nothing after
// that. Only a paid booking can be refunded.
type RefundPolicy struct {
	FullHours      int
	PartialHours   int
	PartialPercent int
}

func DefaultRefundPolicy() RefundPolicy {
	return RefundPolicy{
		FullHours:      24,
		PartialHours:   6,
		PartialPercent: 50,
	}
}

type RefundDecision struct {
	Refundable bool    `json:"refundable"`
	Amount     float64 `json:"amount"`
	Message    string  `json:"message"`
}

// Evaluate is pure: it inspects the booking and the clock, it does not touch
// the gateway or mutate anything.
func (p RefundPolicy) Evaluate(b *models.Booking, now time.Time, tz string) RefundDecision {
	if PaymentStatus(b.PaymentStatus) != PaymentPaid {
		return RefundDecision{Message: "no captured payment to refund"}
	}

	start, err := AppointmentStart(b, tz)
	if err != nil {
		return RefundDecision{Message: "unresolvable appointment time"}
	}

	until := start.Sub(now)

	if until >= time.Duration(p.FullHours)*time.Hour {
		return RefundDecision{
			Refundable: true,
			Amount:     b.TotalAmount,
			Message:    "full refund",
		}
	}

	if until >= time.Duration(p.PartialHours)*time.Hour {
		// Computed in integer cents so amounts like 79.99 do not lose a cent
		// to float64 representation.
		cents := math.Round(b.TotalAmount * 100)
		amount := math.Round(cents*float64(p.PartialPercent)/100) / 100
		return RefundDecision{
			Refundable: true,
			Amount:     amount,
			Message:    fmt.Sprintf("partial refund (%d%%)", p.PartialPercent),
		}
	}

	return RefundDecision{Message: "cancelled too close to the appointment"}
}
