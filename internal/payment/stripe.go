// Package payment is the bridge to the external payment processor. The
// processor's ledger is opaque to this service; all we broker is a
// one-off card payment intent and its client secret.
package payment

import (
	"context"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Provider creates payment intents with an external processor
type Provider interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
}

// StripeProvider implements Provider against the Stripe API
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider creates a provider with its own API client. The
// client is injected rather than using the package-global key so tests
// and multiple instances stay independent.
func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

// CreateIntent requests a card-only payment intent and returns the
// client secret verbatim
func (p *StripeProvider) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
