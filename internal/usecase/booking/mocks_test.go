package booking

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chairtime/chairtime-api/internal/audit"
	"github.com/chairtime/chairtime-api/internal/models"
	"github.com/chairtime/chairtime-api/internal/payment"
)

// ======================================================
// REPOSITORY MOCK
// ======================================================

type mockRepo struct {
	mock.Mock

	// Rows InsertBooking presents to the conflict check, standing in for
	// the row-locked active bookings of the transaction.
	lockedRows []models.Booking
}

func (m *mockRepo) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barbershop), args.Error(1)
}

func (m *mockRepo) GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barbershop), args.Error(1)
}

func (m *mockRepo) ListShopServices(ctx context.Context, barbershopID uint, serviceIDs []uint) ([]models.Service, error) {
	args := m.Called(ctx, barbershopID, serviceIDs)
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *mockRepo) ListBusinessHours(ctx context.Context, barbershopID uint) ([]models.BusinessHour, error) {
	args := m.Called(ctx, barbershopID)
	return args.Get(0).([]models.BusinessHour), args.Error(1)
}

func (m *mockRepo) GetSpecialClosingDay(ctx context.Context, barbershopID uint, date string) (*models.SpecialClosingDay, error) {
	args := m.Called(ctx, barbershopID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialClosingDay), args.Error(1)
}

func (m *mockRepo) ListActiveBookings(ctx context.Context, barbershopID uint, date string) ([]models.Booking, error) {
	args := m.Called(ctx, barbershopID, date)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockRepo) ListBookingsForDate(ctx context.Context, barbershopID uint, date string, includeCancelled bool) ([]models.Booking, error) {
	args := m.Called(ctx, barbershopID, date, includeCancelled)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockRepo) ListCustomerBookings(ctx context.Context, customerID uint) ([]models.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockRepo) GetBookingForCustomer(ctx context.Context, bookingID, customerID uint) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockRepo) GetBookingForShop(ctx context.Context, bookingID, barbershopID uint) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, barbershopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockRepo) InsertBooking(ctx context.Context, b *models.Booking, conflictCheck func(existing []models.Booking) error) error {
	args := m.Called(ctx, b)
	if err := conflictCheck(m.lockedRows); err != nil {
		return err
	}
	return args.Error(0)
}

func (m *mockRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepo) GetFeedbackForBooking(ctx context.Context, bookingID uint) (*models.Feedback, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *mockRepo) CreateFeedback(ctx context.Context, f *models.Feedback) error {
	return m.Called(ctx, f).Error(0)
}

// ======================================================
// GATEWAY MOCK
// ======================================================

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateOrder(ctx context.Context, bookingRef string, amount float64) (*payment.Order, error) {
	args := m.Called(ctx, bookingRef, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return m.Called(orderID, paymentID, signature).Bool(0)
}

func (m *mockGateway) Refund(ctx context.Context, paymentRef string, amount float64, full bool) error {
	return m.Called(ctx, paymentRef, amount, full).Error(0)
}

// ======================================================
// LOCKER / AUDITOR FAKES
// ======================================================

type fakeLocker struct {
	acquired int
	released int
	fail     error
}

func (l *fakeLocker) Acquire(ctx context.Context, key string) (func(), error) {
	if l.fail != nil {
		return nil, l.fail
	}
	l.acquired++
	return func() { l.released++ }, nil
}

type recordingAuditor struct {
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}
