package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// CheckoutStore is the persistence contract used by checkout assembly.
// VariantsForCheckout takes row locks, so calling it through InTx holds the
// selected variants until the order is committed and two concurrent
// checkouts cannot both pass the stock gate on the same last unit.
type CheckoutStore interface {
	VariantsForCheckout(ctx context.Context, variantIDs []string) ([]Variant, error)
	CreateOrder(ctx context.Context, order *Order) error
	InTx(ctx context.Context, fn func(tx CheckoutStore) error) error
}

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// VariantsForCheckout loads the non-archived variants among the given ids,
// each with its owning product, locked FOR UPDATE. Duplicate ids collapse
// through the IN filter.
func (r *OrdersRepository) VariantsForCheckout(ctx context.Context, variantIDs []string) ([]Variant, error) {
	var variants []Variant
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Product").
		Where("id IN ? AND is_archived = false", variantIDs).
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *OrdersRepository) CreateOrder(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrdersRepository) InTx(ctx context.Context, fn func(tx CheckoutStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OrdersRepository{db: tx})
	})
}

// ListByStore returns a store's orders, newest first, with their items and
// each item's variant.
func (r *OrdersRepository) ListByStore(ctx context.Context, storeID string) ([]Order, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("OrderItems.Variant").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
