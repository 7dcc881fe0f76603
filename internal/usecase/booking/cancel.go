package booking

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/chairtime/chairtime-api/internal/audit"
	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/models"
	"github.com/chairtime/chairtime-api/internal/payment"
	"github.com/chairtime/chairtime-api/internal/timezone"
)

type CancelBookingInput struct {
	BookingID uint
	Reason    string

	// Exactly one of the two scopes is set, depending on who cancels.
	CustomerID   *uint
	BarbershopID *uint

	ActorUserID uint
}

type CancelBookingResult struct {
	Booking        *models.Booking        `json:"booking"`
	Refund         *domain.RefundDecision `json:"refund,omitempty"`
	RefundExecuted bool                   `json:"refund_executed"`
}

type CancelBooking struct {
	repo    domain.Repository
	gateway payment.Gateway
	policy  domain.RefundPolicy
	audit   Auditor
}

func NewCancelBooking(
	repo domain.Repository,
	gateway payment.Gateway,
	policy domain.RefundPolicy,
	auditDispatcher Auditor,
) *CancelBooking {
	return &CancelBooking{
		repo:    repo,
		gateway: gateway,
		policy:  policy,
		audit:   auditDispatcher,
	}
}

// Execute cancels a pending or confirmed booking and, when the booking was
// paid, evaluates the refund policy and runs the gateway refund. A gateway
// failure never blocks the cancellation: the booking is cancelled, payment
// stays paid, and the row is flagged for manual reconciliation.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	in CancelBookingInput,
) (*CancelBookingResult, error) {

	b, err := uc.fetch(ctx, in)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, b.BarbershopID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(b, in.Reason, now); err != nil {
		return nil, err
	}

	result := &CancelBookingResult{Booking: b}

	decision := uc.policy.Evaluate(b, now, shop.Timezone)
	if domain.PaymentStatus(b.PaymentStatus) == domain.PaymentPaid {
		result.Refund = &decision
	}

	// Persist the cancellation before touching the gateway. Once the status
	// is cancelled, a retry trips the transition guard and cannot reach the
	// refund a second time.
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	if decision.Refundable {
		full := decision.Amount >= b.TotalAmount
		if err := uc.gateway.Refund(ctx, b.PaymentRef, decision.Amount, full); err != nil {
			log.Error().Err(err).
				Uint("booking_id", b.ID).
				Float64("amount", decision.Amount).
				Msg("refund gateway call failed, flagging for reconciliation")

			b.RefundNote = "refund pending manual reconciliation: " + decision.Message

			uc.audit.Dispatch(audit.Event{
				BarbershopID: b.BarbershopID,
				UserID:       &in.ActorUserID,
				Action:       "refund_failed",
				Entity:       "booking",
				EntityID:     &b.ID,
				Metadata:     map[string]any{"amount": decision.Amount},
			})
		} else {
			amount := decision.Amount
			b.PaymentStatus = string(domain.PaymentRefunded)
			b.RefundAmount = &amount
			b.RefundNote = decision.Message
			result.RefundExecuted = true
		}

		// The cancellation is already durable; losing the refund outcome is
		// recoverable from the gateway side, so only log here.
		if err := uc.repo.UpdateBooking(ctx, b); err != nil {
			log.Error().Err(err).
				Uint("booking_id", b.ID).
				Msg("failed to record refund outcome")
		}
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: b.BarbershopID,
		UserID:       &in.ActorUserID,
		Action:       "booking_cancelled",
		Entity:       "booking",
		EntityID:     &b.ID,
		Metadata:     map[string]any{"reason": in.Reason},
	})

	return result, nil
}

func (uc *CancelBooking) fetch(ctx context.Context, in CancelBookingInput) (*models.Booking, error) {
	if in.CustomerID != nil {
		return uc.repo.GetBookingForCustomer(ctx, in.BookingID, *in.CustomerID)
	}
	if in.BarbershopID != nil {
		return uc.repo.GetBookingForShop(ctx, in.BookingID, *in.BarbershopID)
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}
