package dto

import "time"

type BookingListDTO struct {
	ID              uint      `json:"id"`
	Reference       string    `json:"reference"`
	BarbershopID    uint      `json:"barbershop_id"`
	CustomerName    string    `json:"customer_name"`
	ServiceNames    []string  `json:"service_names"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	TotalAmount     float64   `json:"total_amount"`
	PaymentStatus   string    `json:"payment_status"`
	Status          string    `json:"status"`
	CanGiveFeedback bool      `json:"can_give_feedback,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
