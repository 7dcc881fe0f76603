package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

// MercadoPagoGateway implements Gateway on the Mercado Pago SDK. Orders are
// checkout preferences; signatures are the HMAC-SHA256 notification scheme
// keyed with the webhook secret.
type MercadoPagoGateway struct {
	preferences   preference.Client
	refunds       refund.Client
	webhookSecret string
}

func NewMercadoPago(accessToken, webhookSecret string) (*MercadoPagoGateway, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoGateway{
		preferences:   preference.NewClient(cfg),
		refunds:       refund.NewClient(cfg),
		webhookSecret: webhookSecret,
	}, nil
}

func (g *MercadoPagoGateway) CreateOrder(
	ctx context.Context,
	bookingRef string,
	amount float64,
) (*Order, error) {

	req := preference.Request{
		ExternalReference: bookingRef,
		Items: []preference.ItemRequest{
			{
				Title:     "Appointment " + bookingRef,
				Quantity:  1,
				UnitPrice: amount,
			},
		},
	}

	resource, err := g.preferences.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago create preference: %w", err)
	}

	return &Order{
		ID:       resource.ID,
		Amount:   amount,
		Currency: "BRL",
	}, nil
}

// VerifySignature recomputes the HMAC over "order:payment" and compares in
// constant time.
func (g *MercadoPagoGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	fmt.Fprintf(mac, "%s:%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (g *MercadoPagoGateway) Refund(
	ctx context.Context,
	paymentRef string,
	amount float64,
	full bool,
) error {

	paymentID, err := strconv.Atoi(paymentRef)
	if err != nil {
		return fmt.Errorf("mercadopago refund: bad payment ref %q: %w", paymentRef, err)
	}

	if full {
		_, err = g.refunds.Create(ctx, paymentID)
	} else {
		_, err = g.refunds.CreatePartialRefund(ctx, paymentID, amount)
	}
	if err != nil {
		return fmt.Errorf("mercadopago refund: %w", err)
	}
	return nil
}

var _ Gateway = (*MercadoPagoGateway)(nil)
