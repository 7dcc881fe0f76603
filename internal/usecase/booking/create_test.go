package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/lock"
	"github.com/chairtime/chairtime-api/internal/models"
	"github.com/chairtime/chairtime-api/internal/payment"
)

const (
	testShopID   = uint(1)
	testCustomer = uint(42)
	farDate      = "2099-06-15"
)

func testShop() *models.Barbershop {
	return &models.Barbershop{
		ID:                testShopID,
		Name:              "Corner Cuts",
		Slug:              "corner-cuts",
		Timezone:          "America/Sao_Paulo",
		MinAdvanceMinutes: 120,
	}
}

func testServices() []models.Service {
	return []models.Service{
		{ID: 10, BarbershopID: testShopID, Name: "Haircut", DurationMin: 30, Price: 50, Active: true},
		{ID: 11, BarbershopID: testShopID, Name: "Beard", DurationMin: 60, Price: 70, Active: true},
	}
}

// openAllWeek never closes, so far-future test dates work on any weekday.
func openAllWeek() []models.BusinessHour {
	return domain.DefaultBusinessHours(testShopID, -1)
}

type createFixture struct {
	repo    *mockRepo
	gateway *mockGateway
	locker  *fakeLocker
	auditor *recordingAuditor
	uc      *CreateBooking
}

func newCreateFixture() *createFixture {
	f := &createFixture{
		repo:    &mockRepo{},
		gateway: &mockGateway{},
		locker:  &fakeLocker{},
		auditor: &recordingAuditor{},
	}
	f.uc = NewCreateBooking(f.repo, f.gateway, f.locker, f.auditor, 30)
	return f
}

func (f *createFixture) expectOpenDay(active []models.Booking) {
	f.repo.On("GetBarbershopByID", mock.Anything, testShopID).Return(testShop(), nil)
	f.repo.On("ListShopServices", mock.Anything, testShopID, []uint{10, 11}).Return(testServices(), nil)
	f.repo.On("GetSpecialClosingDay", mock.Anything, testShopID, farDate).Return(nil, nil)
	f.repo.On("ListBusinessHours", mock.Anything, testShopID).Return(openAllWeek(), nil)
	f.repo.On("ListActiveBookings", mock.Anything, testShopID, farDate).Return(active, nil)
}

func baseInput() CreateBookingInput {
	return CreateBookingInput{
		CustomerID:    testCustomer,
		BarbershopID:  testShopID,
		ServiceIDs:    []uint{10, 11},
		Date:          farDate,
		Time:          "10:00",
		PaymentMethod: payment.MethodMercadoPago,
	}
}

func TestCreateBooking_GatewayFlow(t *testing.T) {
	f := newCreateFixture()
	f.expectOpenDay(nil)

	f.gateway.On("CreateOrder", mock.Anything, mock.Anything, 120.0).
		Return(&payment.Order{ID: "order_abc", Amount: 120, Currency: "BRL"}, nil)
	f.repo.On("InsertBooking", mock.Anything, mock.Anything).Return(nil)

	res, err := f.uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	b := res.Booking
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, string(domain.PaymentPending), b.PaymentStatus)
	assert.Equal(t, "order_abc", b.PaymentOrderID)
	assert.Equal(t, 90, b.TotalDurationMin)
	assert.Equal(t, 120.0, b.TotalAmount)

	require.NotNil(t, res.Order)
	assert.Equal(t, "order_abc", res.Order.ID)

	assert.Equal(t, []string{"booking_created"}, f.auditor.actions())
	assert.Equal(t, 1, f.locker.acquired)
	assert.Equal(t, 1, f.locker.released)
}

func TestCreateBooking_OrderCallBoundedBelowLockTTL(t *testing.T) {
	f := newCreateFixture()
	f.expectOpenDay(nil)

	var deadline time.Time
	var hasDeadline bool
	f.gateway.On("CreateOrder", mock.Anything, mock.Anything, 120.0).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			deadline, hasDeadline = ctx.Deadline()
		}).
		Return(&payment.Order{ID: "order_abc", Amount: 120, Currency: "BRL"}, nil)
	f.repo.On("InsertBooking", mock.Anything, mock.Anything).Return(nil)

	before := time.Now()
	_, err := f.uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	// A gateway call that drags on must give up before the slot lock can
	// expire, or creation would proceed without mutual exclusion.
	require.True(t, hasDeadline)
	assert.LessOrEqual(t, deadline.Sub(before), lock.DefaultTTL)
	assert.Less(t, orderTimeout, lock.DefaultTTL)
}

func TestCreateBooking_OnsiteConfirmsImmediately(t *testing.T) {
	f := newCreateFixture()
	f.expectOpenDay(nil)
	f.repo.On("InsertBooking", mock.Anything, mock.Anything).Return(nil)

	in := baseInput()
	in.PaymentMethod = payment.MethodOnsite

	res, err := f.uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), res.Booking.Status)
	assert.NotNil(t, res.Booking.ConfirmedAt)
	assert.Nil(t, res.Order)
	f.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_SlotAlreadyTaken(t *testing.T) {
	f := newCreateFixture()
	// A 60-minute booking at 10:00 covers the requested 10:30 start.
	f.expectOpenDay([]models.Booking{
		{AppointmentTime: "10:00", TotalDurationMin: 60},
	})

	in := baseInput()
	in.Time = "10:30"

	_, err := f.uc.Execute(context.Background(), in)
	assert.Equal(t, httperr.CodeSlotNoLongerAvailable, httperr.BusinessCode(err))

	// Rejected before any money movement.
	f.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "InsertBooking", mock.Anything, mock.Anything)
	assert.Equal(t, 1, f.locker.released)
}

func TestCreateBooking_InsertTimeConflict(t *testing.T) {
	f := newCreateFixture()
	// The availability read sees a free day, but by insert time the locked
	// rows carry a competing booking for the same run.
	f.expectOpenDay(nil)
	f.repo.lockedRows = []models.Booking{
		{AppointmentTime: "10:00", TotalDurationMin: 30},
	}

	f.gateway.On("CreateOrder", mock.Anything, mock.Anything, 120.0).
		Return(&payment.Order{ID: "order_abc", Amount: 120, Currency: "BRL"}, nil)
	f.repo.On("InsertBooking", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Execute(context.Background(), baseInput())
	assert.Equal(t, httperr.CodeSlotNoLongerAvailable, httperr.BusinessCode(err))
	assert.Empty(t, f.auditor.actions())
}

func TestCreateBooking_Rejections(t *testing.T) {
	t.Run("unknown payment method", func(t *testing.T) {
		f := newCreateFixture()
		f.repo.On("GetBarbershopByID", mock.Anything, testShopID).Return(testShop(), nil)

		in := baseInput()
		in.PaymentMethod = "pix"

		_, err := f.uc.Execute(context.Background(), in)
		assert.Equal(t, "invalid_payment_method", httperr.BusinessCode(err))
	})

	t.Run("service not in shop catalog", func(t *testing.T) {
		f := newCreateFixture()
		f.repo.On("GetBarbershopByID", mock.Anything, testShopID).Return(testShop(), nil)
		f.repo.On("ListShopServices", mock.Anything, testShopID, []uint{10, 11}).
			Return(testServices()[:1], nil)

		_, err := f.uc.Execute(context.Background(), baseInput())
		assert.Equal(t, httperr.CodeInvalidSelection, httperr.BusinessCode(err))
	})

	t.Run("empty selection", func(t *testing.T) {
		f := newCreateFixture()
		f.repo.On("GetBarbershopByID", mock.Anything, testShopID).Return(testShop(), nil)

		in := baseInput()
		in.ServiceIDs = nil

		_, err := f.uc.Execute(context.Background(), in)
		assert.Equal(t, httperr.CodeInvalidSelection, httperr.BusinessCode(err))
	})

	t.Run("start inside the minimum advance window", func(t *testing.T) {
		f := newCreateFixture()
		f.repo.On("GetBarbershopByID", mock.Anything, testShopID).Return(testShop(), nil)
		f.repo.On("ListShopServices", mock.Anything, testShopID, []uint{10, 11}).Return(testServices(), nil)

		in := baseInput()
		in.Date = "2020-01-01"

		_, err := f.uc.Execute(context.Background(), in)
		assert.Equal(t, "too_soon", httperr.BusinessCode(err))
		assert.Zero(t, f.locker.acquired)
	})

	t.Run("closure day", func(t *testing.T) {
		f := newCreateFixture()
		f.repo.On("GetBarbershopByID", mock.Anything, testShopID).Return(testShop(), nil)
		f.repo.On("ListShopServices", mock.Anything, testShopID, []uint{10, 11}).Return(testServices(), nil)
		f.repo.On("GetSpecialClosingDay", mock.Anything, testShopID, farDate).
			Return(&models.SpecialClosingDay{BarbershopID: testShopID, Date: farDate}, nil)
		f.repo.On("ListBusinessHours", mock.Anything, testShopID).Return(openAllWeek(), nil)

		_, err := f.uc.Execute(context.Background(), baseInput())
		assert.Equal(t, "shop_closed", httperr.BusinessCode(err))
	})

	t.Run("start off the day's grid", func(t *testing.T) {
		f := newCreateFixture()
		f.expectOpenDay(nil)

		in := baseInput()
		in.Time = "07:00"

		_, err := f.uc.Execute(context.Background(), in)
		assert.Equal(t, "outside_business_hours", httperr.BusinessCode(err))
	})

	t.Run("lock acquisition failure propagates", func(t *testing.T) {
		f := newCreateFixture()
		f.repo.On("GetBarbershopByID", mock.Anything, testShopID).Return(testShop(), nil)
		f.repo.On("ListShopServices", mock.Anything, testShopID, []uint{10, 11}).Return(testServices(), nil)
		f.locker.fail = errors.New("redis down")

		_, err := f.uc.Execute(context.Background(), baseInput())
		assert.EqualError(t, err, "redis down")
	})
}
