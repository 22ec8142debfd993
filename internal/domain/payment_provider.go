package domain

import "context"

type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*CheckoutSession, error)
}

// SessionRequest is everything the provider needs to open a hosted checkout page.
// Amounts are in the currency's minor unit.
type SessionRequest struct {
	APIKey            string
	IdempotencyKey    string
	LineItems         []LineItem
	SuccessURL        string
	CancelURL         string
	ClientReferenceID string
	Metadata          map[string]string
}

type LineItem struct {
	Name       string
	Currency   string
	UnitAmount int64
	Quantity   int64
}

type CheckoutSession struct {
	ID  string
	URL string
}
