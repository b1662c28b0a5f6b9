package gateway

import (
	"context"
	"fmt"
	"strconv"

	"wanderly/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway implements PaymentGateway against Stripe. The global
// stripe.Key is set at startup.
type StripeGateway struct {
	Logger *zap.Logger
}

func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{Logger: logger}
}

// CreatePaymentLink creates a Stripe PaymentIntent mirroring ours and
// returns its client secret. Amounts are whole rupees on our side and
// paise on the gateway side.
func (g *StripeGateway) CreatePaymentLink(ctx context.Context, intent *models.PaymentIntent) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(intent.Amount * 100),
		Currency: stripe.String(string(stripe.CurrencyINR)),
		Metadata: map[string]string{
			"booking_id": intent.BookingID,
			"payment_id": intent.PaymentID,
		},
	}
	params.Context = ctx
	if intent.IsEmiPayment {
		params.Metadata["installment_number"] = strconv.Itoa(intent.InstallmentNumber)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create gateway payment intent: %w", err)
	}

	intent.GatewayRef = pi.ID
	g.Logger.Info("Gateway payment intent created",
		zap.String("paymentId", intent.PaymentID),
		zap.String("gatewayRef", pi.ID))
	return pi.ClientSecret, nil
}
