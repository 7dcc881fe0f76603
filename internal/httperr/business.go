package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code of a business error, or "" for other errors.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Codes of the booking engine error taxonomy. Shared so handlers, use cases
// and tests agree on the wire strings.
const (
	CodeHoursNotConfigured        = "hours_not_configured"
	CodeInvalidSelection          = "invalid_selection"
	CodeSlotNoLongerAvailable     = "slot_no_longer_available"
	CodePaymentVerificationFailed = "payment_verification_failed"
	CodeInvalidStateTransition    = "invalid_state_transition"
	CodeRefundFailed              = "refund_failed"
)
