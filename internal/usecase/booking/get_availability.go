package booking

import (
	"context"
	"time"

	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/models"
	"github.com/chairtime/chairtime-api/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type AvailabilityInput struct {
	Slug       string
	Date       string // "2006-01-02"
	ServiceIDs []uint
}

type AvailabilityResult struct {
	Date      string        `json:"date"`
	TimeSlots []domain.Slot `json:"time_slots"`
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo        domain.Repository
	granularity int
}

func NewGetAvailability(repo domain.Repository, granularityMin int) *GetAvailability {
	return &GetAvailability{
		repo:        repo,
		granularity: granularityMin,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	shop, err := uc.repo.GetBarbershopBySlug(ctx, in.Slug)
	if err != nil {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}

	loc := timezone.Location(shop.Timezone)
	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// Selection is validated before any slot computation. An empty
	// selection previews the day with single-slot runs.
	totalDuration := 0
	if len(in.ServiceIDs) > 0 {
		services, err := uc.repo.ListShopServices(ctx, shop.ID, in.ServiceIDs)
		if err != nil {
			return nil, err
		}
		if len(services) != len(in.ServiceIDs) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidSelection)
		}
		totalDuration = totalServiceDuration(services)
	}

	closure, err := uc.repo.GetSpecialClosingDay(ctx, shop.ID, in.Date)
	if err != nil {
		return nil, err
	}

	hours, err := uc.repo.ListBusinessHours(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	window, err := domain.ResolveDayWindow(hours, closure, date)
	if err != nil {
		return nil, err
	}

	if !window.Open {
		return &AvailabilityResult{Date: in.Date, TimeSlots: []domain.Slot{}}, nil
	}

	bookings, err := uc.repo.ListActiveBookings(ctx, shop.ID, in.Date)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	slots := domain.ResolveDaySlots(window, bookings, totalDuration, uc.granularity, now, date)
	if slots == nil {
		slots = []domain.Slot{}
	}

	return &AvailabilityResult{Date: in.Date, TimeSlots: slots}, nil
}

func totalServiceDuration(services []models.Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMin
	}
	return total
}

func totalServicePrice(services []models.Service) float64 {
	total := 0.0
	for _, s := range services {
		total += s.Price
	}
	return total
}
