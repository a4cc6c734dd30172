// Package events publishes order lifecycle events for downstream consumers
// (fulfilment, notifications). Publishing is best-effort: checkout never
// fails because the broker is down.
package events

import (
	"context"
	"time"
)

// OrderCreated is emitted after a checkout commits its order.
type OrderCreated struct {
	OrderID    string    `json:"order_id"`
	StoreID    string    `json:"store_id"`
	VariantIDs []string  `json:"variant_ids"`
	CreatedAt  time.Time `json:"created_at"`
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
}

// NopPublisher drops events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	return nil
}
