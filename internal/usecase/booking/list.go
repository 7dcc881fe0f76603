package booking

import (
	"context"

	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/dto"
	"github.com/chairtime/chairtime-api/internal/models"
)

// ======================================================
// SHOP: bookings of one date
// ======================================================

type ListShopBookings struct {
	repo domain.Repository
}

func NewListShopBookings(repo domain.Repository) *ListShopBookings {
	return &ListShopBookings{repo: repo}
}

func (uc *ListShopBookings) Execute(
	ctx context.Context,
	barbershopID uint,
	date string,
	includeCancelled bool,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForDate(ctx, barbershopID, date, includeCancelled)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, toListDTO(&bookings[i]))
	}
	return out, nil
}

// ======================================================
// CUSTOMER: booking history
// ======================================================

type ListCustomerBookings struct {
	repo domain.Repository
}

func NewListCustomerBookings(repo domain.Repository) *ListCustomerBookings {
	return &ListCustomerBookings{repo: repo}
}

// Execute returns the customer's bookings ordered by creation, newest first.
// The ordering is fixed server-side; clients do not reshuffle.
func (uc *ListCustomerBookings) Execute(
	ctx context.Context,
	customerID uint,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListCustomerBookings(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for i := range bookings {
		d := toListDTO(&bookings[i])
		// Feedback is offered only for completed bookings without one.
		if bookings[i].Status == string(domain.StatusCompleted) {
			fb, err := uc.repo.GetFeedbackForBooking(ctx, bookings[i].ID)
			if err == nil && fb == nil {
				d.CanGiveFeedback = true
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func toListDTO(b *models.Booking) dto.BookingListDTO {
	names := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		names = append(names, s.Name)
	}

	return dto.BookingListDTO{
		ID:              b.ID,
		Reference:       b.Reference,
		BarbershopID:    b.BarbershopID,
		CustomerName:    b.Customer.Name,
		ServiceNames:    names,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		TotalAmount:     b.TotalAmount,
		PaymentStatus:   b.PaymentStatus,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
	}
}
