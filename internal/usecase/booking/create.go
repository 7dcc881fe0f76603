package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chairtime/chairtime-api/internal/audit"
	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/models"
	"github.com/chairtime/chairtime-api/internal/payment"
	"github.com/chairtime/chairtime-api/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID   uint
	BarbershopID uint

	ServiceIDs []uint

	Date string // "2006-01-02"
	Time string // starting slot, "15:04"

	PaymentMethod string
}

type CreateBookingResult struct {
	Booking *models.Booking `json:"booking"`
	Order   *payment.Order  `json:"order,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

// SlotLocker serializes booking creation per shop and date. Satisfied by
// *lock.Locker.
type SlotLocker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// Auditor receives domain events off the request path. Satisfied by
// *audit.Dispatcher.
type Auditor interface {
	Dispatch(ev audit.Event)
}

type CreateBooking struct {
	repo        domain.Repository
	gateway     payment.Gateway
	locker      SlotLocker
	audit       Auditor
	granularity int
}

func NewCreateBooking(
	repo domain.Repository,
	gateway payment.Gateway,
	locker SlotLocker,
	auditDispatcher Auditor,
	granularityMin int,
) *CreateBooking {
	return &CreateBooking{
		repo:        repo,
		gateway:     gateway,
		locker:      locker,
		audit:       auditDispatcher,
		granularity: granularityMin,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}

	if !payment.KnownMethod(in.PaymentMethod) {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSelection)
	}
	services, err := uc.repo.ListShopServices(ctx, shop.ID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSelection)
	}

	totalDuration := totalServiceDuration(services)
	totalAmount := totalServicePrice(services)

	loc := timezone.Location(shop.Timezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := shop.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// One creation at a time per (shop, date); the ledger transaction
	// re-checks under row locks, this serializes across processes.
	release, err := uc.locker.Acquire(ctx, lockKey(shop.ID, in.Date))
	if err != nil {
		return nil, err
	}
	defer release()

	if err := uc.verifySlotStillOpen(ctx, shop, in, totalDuration, now, start); err != nil {
		return nil, err
	}

	b := &models.Booking{
		Reference:        uuid.NewString(),
		BarbershopID:     shop.ID,
		CustomerID:       in.CustomerID,
		Services:         services,
		AppointmentDate:  in.Date,
		AppointmentTime:  in.Time,
		TotalDurationMin: totalDuration,
		TotalAmount:      totalAmount,
		PaymentMethod:    in.PaymentMethod,
		PaymentStatus:    string(domain.PaymentPending),
		Status:           string(domain.InitialStatus()),
	}

	var order *payment.Order
	if payment.ImmediateConfirm(in.PaymentMethod) {
		// Settles locally; creation and confirmation are one step.
		b.Status = string(domain.StatusConfirmed)
		b.ConfirmedAt = &now
	} else {
		// Bounded below the slot lock TTL; an order call that drags on must
		// not outlive the lock it runs under.
		octx, cancel := context.WithTimeout(ctx, orderTimeout)
		order, err = uc.gateway.CreateOrder(octx, b.Reference, totalAmount)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("create payment order: %w", err)
		}
		b.PaymentOrderID = order.ID
	}

	err = uc.repo.InsertBooking(ctx, b, func(existing []models.Booking) error {
		if domain.OverlapsExisting(existing, in.Time, totalDuration, uc.granularity) {
			return httperr.ErrBusiness(httperr.CodeSlotNoLongerAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       &in.CustomerID,
		Action:       "booking_created",
		Entity:       "booking",
		EntityID:     &b.ID,
		Metadata: map[string]any{
			"date":   in.Date,
			"time":   in.Time,
			"method": in.PaymentMethod,
		},
	})

	return &CreateBookingResult{Booking: b, Order: order}, nil
}

// verifySlotStillOpen recomputes the day's availability and demands the
// requested start be a bookable slot. Losing the race here or at insert time
// is recoverable: the caller re-queries and the user picks again; a slot is
// never substituted silently.
func (uc *CreateBooking) verifySlotStillOpen(
	ctx context.Context,
	shop *models.Barbershop,
	in CreateBookingInput,
	totalDuration int,
	now, date time.Time,
) error {

	closure, err := uc.repo.GetSpecialClosingDay(ctx, shop.ID, in.Date)
	if err != nil {
		return err
	}
	hours, err := uc.repo.ListBusinessHours(ctx, shop.ID)
	if err != nil {
		return err
	}

	window, err := domain.ResolveDayWindow(hours, closure, date)
	if err != nil {
		return err
	}
	if !window.Open {
		return httperr.ErrBusiness("shop_closed")
	}

	bookings, err := uc.repo.ListActiveBookings(ctx, shop.ID, in.Date)
	if err != nil {
		return err
	}

	slots := domain.ResolveDaySlots(window, bookings, totalDuration, uc.granularity, now, date)

	slot := domain.FindSlot(slots, in.Time)
	if slot == nil {
		return httperr.ErrBusiness("outside_business_hours")
	}
	if !slot.Available {
		return httperr.ErrBusiness(httperr.CodeSlotNoLongerAvailable)
	}
	return nil
}

func lockKey(shopID uint, date string) string {
	return fmt.Sprintf("booking_lock:%d:%s", shopID, date)
}

const orderTimeout = 10 * time.Second
