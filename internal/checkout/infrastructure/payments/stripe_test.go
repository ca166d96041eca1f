package payments

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"

	"github.com/akshatjain02/ecommerce-backend/internal/checkout/application"
)

type fakeCharges struct {
	params []*stripe.ChargeParams
	err    error
}

func (f *fakeCharges) New(params *stripe.ChargeParams) (*stripe.Charge, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.Charge{ID: "ch_123"}, nil
}

func testGateway(api chargeAPI) *StripeGateway {
	return &StripeGateway{log: slog.New(slog.DiscardHandler), charges: api}
}

func TestChargeBuildsParams(t *testing.T) {
	api := &fakeCharges{}
	g := testGateway(api)

	res, err := g.Charge(context.Background(), application.ChargeRequest{
		AmountCents:    1998,
		Currency:       "usd",
		Token:          "tok_test",
		Description:    "order #7 (payment 3)",
		IdempotencyKey: "attempt-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ch_123", res.Reference)

	require.Len(t, api.params, 1)
	p := api.params[0]
	assert.Equal(t, int64(1998), *p.Amount)
	assert.Equal(t, "usd", *p.Currency)
	assert.Equal(t, "order #7 (payment 3)", *p.Description)
	require.NotNil(t, p.Source, "the client token must be attached as the charge source")
}

func TestChargeWithoutIdempotencyKey(t *testing.T) {
	api := &fakeCharges{}
	g := testGateway(api)

	_, err := g.Charge(context.Background(), application.ChargeRequest{
		AmountCents: 500, Currency: "usd", Token: "tok_test", Description: "order #1",
	})
	require.NoError(t, err)
	require.Len(t, api.params, 1)
}

func TestChargeFailure(t *testing.T) {
	api := &fakeCharges{err: errors.New("card declined")}
	g := testGateway(api)

	_, err := g.Charge(context.Background(), application.ChargeRequest{
		AmountCents: 1998, Currency: "usd", Token: "tok_test", Description: "order #7",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card declined")
}
