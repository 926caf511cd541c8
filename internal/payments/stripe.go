package payments

import (
	"context"
	"errors"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/kofi-annor/stayhub/internal/apperr"
	"github.com/kofi-annor/stayhub/internal/observability"
)

const outboundTimeout = 10 * time.Second

type StripeProvider struct {
	api      *client.API
	currency stripe.Currency
}

func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api, currency: stripe.CurrencyUSD}
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amount int64, metadata map[string]string) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, outboundTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(p.currency)),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.api.PaymentIntents.New(params)
	observability.ObserveExternal("stripe", "payment_intent_create", err)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "payment processor error", err)
	}
	return fromStripeIntent(pi), nil
}

func (p *StripeProvider) GetIntent(ctx context.Context, id string) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, outboundTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.Get(id, params)
	observability.ObserveExternal("stripe", "payment_intent_get", err)
	if err != nil {
		var sErr *stripe.Error
		if errors.As(err, &sErr) && sErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, apperr.New(apperr.Validation, "payment intent not found")
		}
		return nil, apperr.Wrap(apperr.Upstream, "payment processor error", err)
	}
	return fromStripeIntent(pi), nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Status:       IntentStatus(pi.Status),
		Metadata:     pi.Metadata,
	}
}
