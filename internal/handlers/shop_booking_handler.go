package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/httpresp"
	"github.com/chairtime/chairtime-api/internal/middleware"
	ucBooking "github.com/chairtime/chairtime-api/internal/usecase/booking"
)

// ======================================================
// HANDLER (shop side)
// ======================================================

type ShopBookingHandler struct {
	listUC     *ucBooking.ListShopBookings
	completeUC *ucBooking.CompleteBooking
	cancelUC   *ucBooking.CancelBooking
}

func NewShopBookingHandler(
	listUC *ucBooking.ListShopBookings,
	completeUC *ucBooking.CompleteBooking,
	cancelUC *ucBooking.CancelBooking,
) *ShopBookingHandler {
	return &ShopBookingHandler{
		listUC:     listUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *ShopBookingHandler) ListByDate(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	includeCancelled := c.Query("include_cancelled") == "true"

	bookings, err := h.listUC.Execute(c.Request.Context(), barbershopID, dateStr, includeCancelled)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// UPDATE STATUS
// ======================================================

// UpdateStatus is the shop dashboard's single mutation entry point. Only the
// transitions the state machine allows from here are routed; everything else
// is an illegal transition, rejected without touching the booking.
func (h *ShopBookingHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	bookingID, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid status data.")
		return
	}

	switch domain.Status(req.Status) {

	case domain.StatusCompleted:
		b, err := h.completeUC.Execute(c.Request.Context(), barbershopID, userID, bookingID)
		if err != nil {
			mapBookingError(c, err)
			return
		}
		httpresp.OK(c, b)

	case domain.StatusCancelled:
		result, err := h.cancelUC.Execute(
			c.Request.Context(),
			ucBooking.CancelBookingInput{
				BookingID:    bookingID,
				Reason:       req.Reason,
				BarbershopID: &barbershopID,
				ActorUserID:  userID,
			},
		)
		if err != nil {
			mapBookingError(c, err)
			return
		}
		httpresp.OK(c, result)

	default:
		// pending/confirmed are owned by the payment flow.
		httperr.BadRequest(c, httperr.CodeInvalidStateTransition,
			"The booking cannot change to that status.")
	}
}
