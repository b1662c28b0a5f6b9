package gateway

import (
	"context"

	"wanderly/models"
)

// PaymentGateway creates gateway-side payment intents for checkout.
// Settlement callbacks arrive through the payment service, not here;
// the core never polls or retries the gateway itself.
type PaymentGateway interface {
	// CreatePaymentLink registers the intent with the gateway and
	// returns the client-side payment link/secret.
	CreatePaymentLink(ctx context.Context, intent *models.PaymentIntent) (string, error)
}
