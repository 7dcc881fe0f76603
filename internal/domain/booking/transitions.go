package booking

import (
	"time"

	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/models"
	"github.com/chairtime/chairtime-api/internal/timezone"
)

// ===============================
// Domain Actions
// ===============================

// AppointmentStart resolves the booking's starting instant in the shop's
// timezone.
func AppointmentStart(b *models.Booking, tz string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		b.AppointmentDate+" "+b.AppointmentTime,
		timezone.Location(tz),
	)
}

// Confirm moves a pending booking to confirmed. Payment verification is the
// caller's responsibility; this only enforces transition legality.
func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

// Complete moves a confirmed booking to completed. A future appointment can
// never be completed.
func Complete(b *models.Booking, now time.Time, tz string) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	start, err := AppointmentStart(b, tz)
	if err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}
	if now.Before(start) {
		return httperr.ErrBusiness("appointment_not_started")
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// Cancel moves a pending or confirmed booking to cancelled. The reason is
// mandatory. Refund evaluation happens afterwards and never blocks this.
func Cancel(b *models.Booking, reason string, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}
	if reason == "" {
		return httperr.ErrBusiness("cancellation_reason_required")
	}

	b.Status = string(StatusCancelled)
	b.CancellationReason = reason
	b.CancelledAt = &now
	return nil
}
