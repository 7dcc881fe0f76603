package booking

import (
	"context"

	"github.com/chairtime/chairtime-api/internal/models"
)

// Repository is the booking ledger plus the catalog lookups the engine needs.
// The ledger is the only shared mutable state of the engine; everything else
// in this package is pure.
type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	// -------- Services --------

	// ListShopServices resolves the given service IDs against the shop's
	// active catalog. Any ID missing from the result does not belong to
	// the shop (or is inactive) and invalidates the selection.
	ListShopServices(
		ctx context.Context,
		barbershopID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	// -------- Calendar --------
	ListBusinessHours(
		ctx context.Context,
		barbershopID uint,
	) ([]models.BusinessHour, error)

	// GetSpecialClosingDay returns nil, nil when the date has no closure.
	GetSpecialClosingDay(
		ctx context.Context,
		barbershopID uint,
		date string,
	) (*models.SpecialClosingDay, error)

	// -------- Ledger --------

	// ListActiveBookings returns the pending and confirmed bookings of the
	// (shop, date) pair, chronologically. Cancelled rows never occupy slots.
	ListActiveBookings(
		ctx context.Context,
		barbershopID uint,
		date string,
	) ([]models.Booking, error)

	ListBookingsForDate(
		ctx context.Context,
		barbershopID uint,
		date string,
		includeCancelled bool,
	) ([]models.Booking, error)

	ListCustomerBookings(
		ctx context.Context,
		customerID uint,
	) ([]models.Booking, error)

	GetBookingForCustomer(
		ctx context.Context,
		bookingID uint,
		customerID uint,
	) (*models.Booking, error)

	GetBookingForShop(
		ctx context.Context,
		bookingID uint,
		barbershopID uint,
	) (*models.Booking, error)

	// InsertBooking runs conflictCheck against the row-locked active
	// bookings of the booking's (shop, date) and persists the booking in
	// the same transaction. The check and the write are atomic with
	// respect to concurrent inserts for the same pair.
	InsertBooking(
		ctx context.Context,
		b *models.Booking,
		conflictCheck func(existing []models.Booking) error,
	) error

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Feedback --------

	// GetFeedbackForBooking returns nil, nil when none was given yet.
	GetFeedbackForBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Feedback, error)

	CreateFeedback(
		ctx context.Context,
		f *models.Feedback,
	) error
}
