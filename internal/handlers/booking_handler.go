package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/httpresp"
	"github.com/chairtime/chairtime-api/internal/middleware"
	ucBooking "github.com/chairtime/chairtime-api/internal/usecase/booking"
)

// ======================================================
// HANDLER (customer side)
// ======================================================

type BookingHandler struct {
	createUC        *ucBooking.CreateBooking
	verifyPaymentUC *ucBooking.VerifyPayment
	cancelUC        *ucBooking.CancelBooking
	listMineUC      *ucBooking.ListCustomerBookings
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	verifyPaymentUC *ucBooking.VerifyPayment,
	cancelUC *ucBooking.CancelBooking,
	listMineUC *ucBooking.ListCustomerBookings,
) *BookingHandler {
	return &BookingHandler{
		createUC:        createUC,
		verifyPaymentUC: verifyPaymentUC,
		cancelUC:        cancelUC,
		listMineUC:      listMineUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	Shop            uint   `json:"shop" binding:"required"`
	Services        []uint `json:"services" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"` // YYYY-MM-DD
	AppointmentTime string `json:"appointment_time" binding:"required"` // HH:mm
	PaymentMethod   string `json:"payment_method" binding:"required"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	result, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			CustomerID:    customerID,
			BarbershopID:  req.Shop,
			ServiceIDs:    req.Services,
			Date:          req.AppointmentDate,
			Time:          req.AppointmentTime,
			PaymentMethod: req.PaymentMethod,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, result)
}

// ======================================================
// VERIFY PAYMENT
// ======================================================

func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := paramID(c)
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payment data.")
		return
	}

	b, err := h.verifyPaymentUC.Execute(
		c.Request.Context(),
		ucBooking.VerifyPaymentInput{
			BookingID:  bookingID,
			CustomerID: customerID,
			OrderID:    req.OrderID,
			PaymentID:  req.PaymentID,
			Signature:  req.Signature,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := paramID(c)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A cancellation reason is required.")
		return
	}

	result, err := h.cancelUC.Execute(
		c.Request.Context(),
		ucBooking.CancelBookingInput{
			BookingID:   bookingID,
			Reason:      req.Reason,
			CustomerID:  &customerID,
			ActorUserID: customerID,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// LIST MINE
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.listMineUC.Execute(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return 0, false
	}
	return uint(id), true
}
