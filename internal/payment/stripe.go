package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// stripeProvider implements Provider using Stripe Checkout.
type stripeProvider struct {
	logger zerolog.Logger
}

// NewStripeProvider creates a Stripe-backed payment provider.
func NewStripeProvider(secretKey string, logger zerolog.Logger) Provider {
	stripe.Key = secretKey
	return &stripeProvider{
		logger: logger.With().Str("component", "stripe").Logger(),
	}
}

// CreateCheckoutSession creates a hosted checkout session carrying the
// computed amount as a single line item.
func (p *stripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(params.SuccessURL),
		CancelURL:         stripe.String(params.CancelURL),
		CustomerEmail:     stripe.String(params.CustomerEmail),
		ClientReferenceID: stripe.String(params.ClientReferenceID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(params.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.Description),
					},
					UnitAmount: stripe.Int64(params.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	sessionParams.Context = ctx
	for key, value := range params.Metadata {
		sessionParams.AddMetadata(key, value)
	}

	s, err := session.New(sessionParams)
	if err != nil {
		p.logger.Error().Err(err).Str("reference", params.ClientReferenceID).Msg("failed to create checkout session")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	p.logger.Info().
		Str("session_id", s.ID).
		Str("reference", params.ClientReferenceID).
		Int64("amount", params.Amount).
		Msg("checkout session created")

	return &Session{ID: s.ID, URL: s.URL}, nil
}
