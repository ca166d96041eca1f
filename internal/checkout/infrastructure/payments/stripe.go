// Package payments implements the checkout Gateway against Stripe's Charges
// API. The SDK sub-client sits behind an interface so tests can fake it.
package payments

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"

	"github.com/akshatjain02/ecommerce-backend/internal/checkout/application"
)

type chargeAPI interface {
	New(params *stripe.ChargeParams) (*stripe.Charge, error)
}

type StripeGateway struct {
	log     *slog.Logger
	charges chargeAPI
}

func NewStripeGateway(log *slog.Logger, apiKey string) *StripeGateway {
	sc := client.New(apiKey, nil)
	return &StripeGateway{log: log, charges: sc.Charges}
}

// Charge moves req.AmountCents in minor units against the client-supplied
// token. A non-empty idempotency key makes gateway-side retries safe.
func (g *StripeGateway) Charge(ctx context.Context, req application.ChargeRequest) (application.ChargeResult, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if err := params.SetSource(req.Token); err != nil {
		return application.ChargeResult{}, fmt.Errorf("stripe: set source: %w", err)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	ch, err := g.charges.New(params)
	if err != nil {
		return application.ChargeResult{}, fmt.Errorf("stripe: create charge: %w", err)
	}

	g.log.Info("gateway charge succeeded", "charge_id", ch.ID, "amount_cents", req.AmountCents)
	return application.ChargeResult{Reference: ch.ID}, nil
}
