package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/chairtime/chairtime-api/internal/httperr"
)

// mapBookingError translates the engine's business errors to HTTP. Anything
// unmapped is an internal failure; business codes never leak 500s.
func mapBookingError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {

	case "barbershop_not_found", "booking_not_found":
		httperr.NotFound(c, httperr.BusinessCode(err), "Not found.")

	case httperr.CodeSlotNoLongerAvailable:
		httperr.Conflict(c, httperr.CodeSlotNoLongerAvailable,
			"Slot no longer available, please choose another time.")

	case httperr.CodeInvalidSelection:
		httperr.BadRequest(c, httperr.CodeInvalidSelection,
			"One or more selected services do not belong to this shop.")

	case httperr.CodeInvalidStateTransition:
		httperr.BadRequest(c, httperr.CodeInvalidStateTransition,
			"The booking cannot change to that status.")

	case httperr.CodePaymentVerificationFailed:
		httperr.BadRequest(c, httperr.CodePaymentVerificationFailed,
			"Payment could not be verified; the booking remains pending.")

	case httperr.CodeHoursNotConfigured:
		// Owner-facing configuration problem, never a silent open day.
		httperr.UnprocessableEntity(c, httperr.CodeHoursNotConfigured,
			"The shop has no business hours configured.")

	case "invalid_date", "invalid_date_or_time", "too_soon", "shop_closed",
		"outside_business_hours", "invalid_payment_method",
		"cancellation_reason_required", "appointment_not_started":
		httperr.BadRequest(c, httperr.BusinessCode(err), "Request rejected.")

	default:
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}
