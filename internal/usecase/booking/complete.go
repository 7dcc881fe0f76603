package booking

import (
	"context"

	"github.com/chairtime/chairtime-api/internal/audit"
	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/models"
	"github.com/chairtime/chairtime-api/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	audit Auditor
}

func NewCompleteBooking(
	repo domain.Repository,
	auditDispatcher Auditor,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	barbershopID uint,
	actorUserID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForShop(ctx, bookingID, barbershopID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Complete(b, now, shop.Timezone); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &actorUserID,
		Action:       "booking_completed",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return b, nil
}
