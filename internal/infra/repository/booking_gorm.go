package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var activeStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *BookingGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) ListShopServices(
	ctx context.Context,
	barbershopID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = true AND id IN ?", barbershopID, serviceIDs).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *BookingGormRepository) ListBusinessHours(
	ctx context.Context,
	barbershopID uint,
) ([]models.BusinessHour, error) {

	var hours []models.BusinessHour
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *BookingGormRepository) GetSpecialClosingDay(
	ctx context.Context,
	barbershopID uint,
	date string,
) (*models.SpecialClosingDay, error) {

	var day models.SpecialClosingDay
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND date = ?", barbershopID, date).
		First(&day).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveBookings(
	ctx context.Context,
	barbershopID uint,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND appointment_date = ? AND status IN ?",
			barbershopID, date, activeStatuses,
		).
		Order("appointment_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForDate(
	ctx context.Context,
	barbershopID uint,
	date string,
	includeCancelled bool,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Services").
		Where("barbershop_id = ? AND appointment_date = ?", barbershopID, date)

	if !includeCancelled {
		q = q.Where("status <> ?", string(domain.StatusCancelled))
	}

	var bookings []models.Booking
	if err := q.Order("appointment_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListCustomerBookings(
	ctx context.Context,
	customerID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Services").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) GetBookingForCustomer(
	ctx context.Context,
	bookingID uint,
	customerID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND customer_id = ?", bookingID, customerID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingForShop(
	ctx context.Context,
	bookingID uint,
	barbershopID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND barbershop_id = ?", bookingID, barbershopID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// InsertBooking re-checks the slot under row locks and writes in one
// transaction, so two concurrent inserts for the same (shop, date) cannot
// both pass the overlap check.
func (r *BookingGormRepository) InsertBooking(
	ctx context.Context,
	b *models.Booking,
	conflictCheck func(existing []models.Booking) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barbershop_id = ? AND appointment_date = ? AND status IN ?",
				b.BarbershopID, b.AppointmentDate, activeStatuses,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		if err := conflictCheck(existing); err != nil {
			return err
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Omit("Services").
		Save(b).Error
}

// --------------------------------------------------
// Feedback
// --------------------------------------------------

func (r *BookingGormRepository) GetFeedbackForBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Feedback, error) {

	var fb models.Feedback
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&fb).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *BookingGormRepository) CreateFeedback(
	ctx context.Context,
	f *models.Feedback,
) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
