package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wovenlabs/store-api/events"
	"github.com/wovenlabs/store-api/models"
	"github.com/wovenlabs/store-api/payment"
)

// ErrEmptyCart is returned when no live variant matches the cart.
var ErrEmptyCart = errors.New("no products found for cart")

// minorUnits converts a major-unit price into provider minor units.
var minorUnits = decimal.NewFromInt(100)

// OutOfStockError reports the cart entries that cannot be sold. The ids are
// returned to the client so it can drop exactly those items.
type OutOfStockError struct {
	VariantIDs []string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: %v", e.VariantIDs)
}

// StoreFinder resolves the store a checkout runs against.
type StoreFinder interface {
	GetByID(ctx context.Context, id string) (*models.Store, error)
}

// Assembler turns a cart of variant ids into an unpaid order plus a payment
// session. The stock gate and the order insert share one transaction with
// the variant rows locked, so concurrent checkouts cannot double-sell the
// last unit; the provider call runs after commit, and an order stranded by
// a provider failure is left for the operator rather than rolled back.
type Assembler struct {
	stores    StoreFinder
	orders    models.CheckoutStore
	provider  payment.Provider
	publisher events.Publisher

	successURL string
	cancelURL  string
	logger     *slog.Logger
}

func NewAssembler(stores StoreFinder, orders models.CheckoutStore, provider payment.Provider, publisher events.Publisher, storefrontURL string, logger *slog.Logger) *Assembler {
	return &Assembler{
		stores:     stores,
		orders:     orders,
		provider:   provider,
		publisher:  publisher,
		successURL: storefrontURL + "/cart?success=1",
		cancelURL:  storefrontURL + "/cart?canceled=1",
		logger:     logger,
	}
}

// Checkout validates the cart, records the order and returns the payment
// session URL.
func (a *Assembler) Checkout(ctx context.Context, storeID string, variantIDs []string) (string, error) {
	store, err := a.stores.GetByID(ctx, storeID)
	if err != nil {
		return "", err
	}

	var (
		order      models.Order
		lineItems  []payment.LineItem
		orderedIDs []string
	)
	err = a.orders.InTx(ctx, func(tx models.CheckoutStore) error {
		variants, err := tx.VariantsForCheckout(ctx, variantIDs)
		if err != nil {
			return err
		}
		if len(variants) == 0 {
			return ErrEmptyCart
		}

		var outOfStock []string
		for _, v := range variants {
			if v.Quantity == 0 {
				outOfStock = append(outOfStock, v.ID)
			}
		}
		if len(outOfStock) > 0 {
			return &OutOfStockError{VariantIDs: outOfStock}
		}

		lineItems = make([]payment.LineItem, len(variants))
		items := make([]models.OrderItem, len(variants))
		orderedIDs = make([]string, len(variants))
		for i, v := range variants {
			lineItems[i] = payment.LineItem{
				Name:       v.Product.Name,
				Currency:   store.Currency,
				UnitAmount: v.Product.Price.Mul(minorUnits).IntPart(),
				Quantity:   1,
			}
			items[i] = models.OrderItem{VariantID: v.ID, Quantity: 1}
			orderedIDs[i] = v.ID
		}

		order = models.Order{
			StoreID:    storeID,
			IsPaid:     false,
			OrderItems: items,
		}
		return tx.CreateOrder(ctx, &order)
	})
	if err != nil {
		return "", err
	}

	session, err := a.provider.CreateCheckoutSession(ctx, payment.SessionParams{
		LineItems:  lineItems,
		SuccessURL: a.successURL,
		CancelURL:  a.cancelURL,
		OrderID:    order.ID,
	})
	if err != nil {
		a.logger.Error("checkout session creation failed, order left unpaid",
			"order_id", order.ID, "store_id", storeID, "err", err)
		return "", err
	}

	if err := a.publisher.PublishOrderCreated(ctx, events.OrderCreated{
		OrderID:    order.ID,
		StoreID:    storeID,
		VariantIDs: orderedIDs,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		a.logger.Warn("order event publish failed", "order_id", order.ID, "err", err)
	}

	return session.URL, nil
}
