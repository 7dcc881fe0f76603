package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Public identifier handed to customers and the payment gateway.
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	BarbershopID uint       `gorm:"index:idx_shop_appointment_date" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	Services []Service `gorm:"many2many:booking_services;" json:"services"`

	AppointmentDate string `gorm:"size:10;index:idx_shop_appointment_date" json:"appointment_date"` // "2006-01-02"
	AppointmentTime string `gorm:"size:5" json:"appointment_time"`                                  // starting slot, "15:04"

	// Sum of the selected services' durations at creation time; the booking
	// occupies ceil(TotalDurationMin/granularity) consecutive slots.
	TotalDurationMin int     `json:"total_duration_min"`
	TotalAmount      float64 `json:"total_amount"`

	PaymentMethod string `gorm:"size:30" json:"payment_method"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	// Gateway references stored verbatim for audit.
	PaymentOrderID   string `gorm:"size:100" json:"payment_order_id,omitempty"`
	PaymentRef       string `gorm:"size:100" json:"payment_ref,omitempty"`
	PaymentSignature string `gorm:"size:255" json:"-"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CancellationReason string   `gorm:"size:255" json:"cancellation_reason,omitempty"`
	RefundAmount       *float64 `json:"refund_amount,omitempty"`
	RefundNote         string   `gorm:"size:255" json:"refund_note,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
