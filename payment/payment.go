// Package payment wraps the external payment provider behind a narrow
// session-creation contract so checkout logic never touches provider types.
package payment

import "context"

// LineItem is one priced entry of a checkout session. UnitAmount is in
// minor currency units.
type LineItem struct {
	Name       string
	Currency   string
	UnitAmount int64
	Quantity   int64
}

// SessionParams describes the checkout session to create.
type SessionParams struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	OrderID    string
}

// Session is the provider's pending-payment resource; URL is where the
// buyer gets redirected to pay.
type Session struct {
	URL string
}

type Provider interface {
	CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error)
}
