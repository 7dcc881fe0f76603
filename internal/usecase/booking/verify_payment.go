package booking

import (
	"context"

	"github.com/chairtime/chairtime-api/internal/audit"
	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/models"
	"github.com/chairtime/chairtime-api/internal/payment"
	"github.com/chairtime/chairtime-api/internal/timezone"
)

type VerifyPaymentInput struct {
	BookingID  uint
	CustomerID uint

	OrderID   string
	PaymentID string
	Signature string
}

type VerifyPayment struct {
	repo    domain.Repository
	gateway payment.Gateway
	audit   Auditor
}

func NewVerifyPayment(
	repo domain.Repository,
	gateway payment.Gateway,
	auditDispatcher Auditor,
) *VerifyPayment {
	return &VerifyPayment{
		repo:    repo,
		gateway: gateway,
		audit:   auditDispatcher,
	}
}

// Execute confirms a pending booking after gateway verification. A failed
// verification changes nothing: the booking stays pending and the customer
// may retry the payment.
func (uc *VerifyPayment) Execute(
	ctx context.Context,
	in VerifyPaymentInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForCustomer(ctx, in.BookingID, in.CustomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.CanConfirm(domain.Status(b.Status)); err != nil {
		return nil, err
	}

	if in.OrderID != b.PaymentOrderID ||
		!uc.gateway.VerifySignature(b.PaymentOrderID, in.PaymentID, in.Signature) {
		return nil, httperr.ErrBusiness(httperr.CodePaymentVerificationFailed)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, b.BarbershopID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Confirm(b, now); err != nil {
		return nil, err
	}

	// References stored verbatim for audit.
	b.PaymentStatus = string(domain.PaymentPaid)
	b.PaymentRef = in.PaymentID
	b.PaymentSignature = in.Signature

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: b.BarbershopID,
		UserID:       &in.CustomerID,
		Action:       "booking_confirmed",
		Entity:       "booking",
		EntityID:     &b.ID,
		Metadata:     map[string]any{"payment_ref": in.PaymentID},
	})

	return b, nil
}
