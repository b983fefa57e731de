package payment

import "context"

// CheckoutParams describes one checkout session request. Amount is in minor
// currency units.
type CheckoutParams struct {
	Amount            int64
	Currency          string
	Description       string
	CustomerEmail     string
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
	Metadata          map[string]string
}

// Session is the provider's handle for a created checkout session.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Provider creates checkout sessions with an external payment service.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error)
}
