package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/models"
)

const testTZ = "America/Sao_Paulo"

func bookingAt(status Status, date, tm string) *models.Booking {
	return &models.Booking{
		Status:           string(status),
		PaymentStatus:    string(PaymentPending),
		AppointmentDate:  date,
		AppointmentTime:  tm,
		TotalDurationMin: 60,
		TotalAmount:      100,
	}
}

func TestTransitionGuards(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		check   func(Status) error
		allowed bool
	}{
		{"confirm pending", StatusPending, CanConfirm, true},
		{"confirm confirmed", StatusConfirmed, CanConfirm, false},
		{"confirm completed", StatusCompleted, CanConfirm, false},
		{"confirm cancelled", StatusCancelled, CanConfirm, false},

		{"complete confirmed", StatusConfirmed, CanComplete, true},
		{"complete pending", StatusPending, CanComplete, false},
		{"complete completed", StatusCompleted, CanComplete, false},
		{"complete cancelled", StatusCancelled, CanComplete, false},

		{"cancel pending", StatusPending, CanCancel, true},
		{"cancel confirmed", StatusConfirmed, CanCancel, true},
		{"cancel completed", StatusCompleted, CanCancel, false},
		{"cancel cancelled", StatusCancelled, CanCancel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.from)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, httperr.CodeInvalidStateTransition, httperr.BusinessCode(err))
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	now := time.Now()

	b := bookingAt(StatusPending, "2026-09-14", "10:00")
	require.NoError(t, Confirm(b, now))

	assert.Equal(t, string(StatusConfirmed), b.Status)
	require.NotNil(t, b.ConfirmedAt)
	assert.Equal(t, now, *b.ConfirmedAt)
}

func TestComplete(t *testing.T) {
	t.Run("future appointment cannot be completed", func(t *testing.T) {
		b := bookingAt(StatusConfirmed, "2099-01-01", "10:00")

		err := Complete(b, time.Now(), testTZ)
		assert.Equal(t, "appointment_not_started", httperr.BusinessCode(err))
		assert.Equal(t, string(StatusConfirmed), b.Status)
	})

	t.Run("started appointment completes", func(t *testing.T) {
		b := bookingAt(StatusConfirmed, "2024-01-01", "10:00")

		err := Complete(b, time.Now(), testTZ)
		require.NoError(t, err)
		assert.Equal(t, string(StatusCompleted), b.Status)
		assert.NotNil(t, b.CompletedAt)
	})
}

func TestCancel(t *testing.T) {
	now := time.Now()

	t.Run("requires a reason", func(t *testing.T) {
		b := bookingAt(StatusConfirmed, "2026-09-14", "10:00")

		err := Cancel(b, "", now)
		assert.Equal(t, "cancellation_reason_required", httperr.BusinessCode(err))
		assert.Equal(t, string(StatusConfirmed), b.Status)
	})

	t.Run("records reason and timestamp", func(t *testing.T) {
		b := bookingAt(StatusPending, "2026-09-14", "10:00")

		require.NoError(t, Cancel(b, "customer request", now))
		assert.Equal(t, string(StatusCancelled), b.Status)
		assert.Equal(t, "customer request", b.CancellationReason)
		assert.NotNil(t, b.CancelledAt)
	})

	t.Run("second cancel is rejected, first result stands", func(t *testing.T) {
		b := bookingAt(StatusConfirmed, "2026-09-14", "10:00")
		require.NoError(t, Cancel(b, "first", now))

		err := Cancel(b, "second", now)
		assert.Equal(t, httperr.CodeInvalidStateTransition, httperr.BusinessCode(err))
		assert.Equal(t, "first", b.CancellationReason)
	})
}

func TestAppointmentStart(t *testing.T) {
	b := bookingAt(StatusPending, "2026-09-14", "10:30")

	start, err := AppointmentStart(b, testTZ)
	require.NoError(t, err)

	assert.Equal(t, 10, start.Hour())
	assert.Equal(t, 30, start.Minute())
	assert.Equal(t, testTZ, start.Location().String())
}
