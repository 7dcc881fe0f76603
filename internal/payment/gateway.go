package payment

import "context"

// Order is the gateway-side intent a customer pays against.
type Order struct {
	ID       string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Gateway is the opaque payment capability of the booking engine. The engine
// stores whatever reference strings come back verbatim and never interprets
// them.
type Gateway interface {
	// CreateOrder opens a payment intent for the given booking reference.
	CreateOrder(ctx context.Context, bookingRef string, amount float64) (*Order, error)

	// VerifySignature checks the gateway's signature over an order/payment
	// pair. Pure; no network round trip.
	VerifySignature(orderID, paymentID, signature string) bool

	// Refund sends amount back against a captured payment. full selects a
	// full-amount refund. Errors never corrupt booking state; the caller
	// flags the booking for manual reconciliation instead.
	Refund(ctx context.Context, paymentRef string, amount float64, full bool) error
}

// Methods the engine accepts at booking creation.
const (
	MethodMercadoPago = "mercadopago"
	MethodOnsite      = "onsite"
)

// ImmediateConfirm reports whether the method settles locally, letting the
// booking go straight to confirmed at creation.
func ImmediateConfirm(method string) bool {
	return method == MethodOnsite
}

func KnownMethod(method string) bool {
	return method == MethodMercadoPago || method == MethodOnsite
}
