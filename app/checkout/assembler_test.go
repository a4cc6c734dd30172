package checkout

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wovenlabs/store-api/events"
	"github.com/wovenlabs/store-api/models"
	"github.com/wovenlabs/store-api/payment"
)

// --- Mocks ---

type mockStoreFinder struct {
	store *models.Store
}

func (m *mockStoreFinder) GetByID(ctx context.Context, id string) (*models.Store, error) {
	if m.store == nil || m.store.ID != id {
		return nil, models.ErrStoreNotFound
	}
	return m.store, nil
}

type mockCheckoutStore struct {
	variants []models.Variant

	orders    []*models.Order
	createErr error
}

func (m *mockCheckoutStore) VariantsForCheckout(ctx context.Context, variantIDs []string) ([]models.Variant, error) {
	wanted := make(map[string]struct{}, len(variantIDs))
	for _, id := range variantIDs {
		wanted[id] = struct{}{}
	}
	// Set-membership load: duplicates in the cart collapse here.
	var out []models.Variant
	for _, v := range m.variants {
		if _, ok := wanted[v.ID]; ok && !v.IsArchived {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockCheckoutStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	order.ID = fmt.Sprintf("order-%d", len(m.orders)+1)
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockCheckoutStore) InTx(ctx context.Context, fn func(tx models.CheckoutStore) error) error {
	before := len(m.orders)
	if err := fn(m); err != nil {
		m.orders = m.orders[:before]
		return err
	}
	return nil
}

type mockProvider struct {
	lastParams payment.SessionParams
	err        error
}

func (m *mockProvider) CreateCheckoutSession(ctx context.Context, params payment.SessionParams) (*payment.Session, error) {
	m.lastParams = params
	if m.err != nil {
		return nil, m.err
	}
	return &payment.Session{URL: "https://pay.example/session/123"}, nil
}

type mockPublisher struct {
	published []events.OrderCreated
	err       error
}

func (m *mockPublisher) PublishOrderCreated(ctx context.Context, event events.OrderCreated) error {
	m.published = append(m.published, event)
	return m.err
}

// --- Helpers ---

func checkoutVariant(id, productName, price string, quantity int) models.Variant {
	return models.Variant{
		ID:       id,
		Quantity: quantity,
		Product: models.Product{
			Name:  productName,
			Price: decimal.RequireFromString(price),
		},
	}
}

func newTestAssembler(finder *mockStoreFinder, store *mockCheckoutStore, provider *mockProvider, publisher *mockPublisher) *Assembler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAssembler(finder, store, provider, publisher, "https://shop.example", logger)
}

func ausStore() *mockStoreFinder {
	return &mockStoreFinder{store: &models.Store{ID: "store-1", Currency: "aud"}}
}

// --- Tests ---

func TestCheckoutSuccess(t *testing.T) {
	store := &mockCheckoutStore{variants: []models.Variant{
		checkoutVariant("v1", "Linen Shirt", "19.99", 5),
		checkoutVariant("v2", "Wool Scarf", "24.50", 1),
	}}
	provider := &mockProvider{}
	publisher := &mockPublisher{}
	assembler := newTestAssembler(ausStore(), store, provider, publisher)

	url, err := assembler.Checkout(context.Background(), "store-1", []string{"v1", "v2"})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/session/123", url)

	// One unpaid order with one item per variant, recorded before the session.
	require.Len(t, store.orders, 1)
	order := store.orders[0]
	assert.Equal(t, "store-1", order.StoreID)
	assert.False(t, order.IsPaid)
	require.Len(t, order.OrderItems, 2)
	for _, item := range order.OrderItems {
		assert.Equal(t, 1, item.Quantity)
	}

	// Line items are priced in minor units from the owning product.
	require.Len(t, provider.lastParams.LineItems, 2)
	assert.Equal(t, payment.LineItem{
		Name: "Linen Shirt", Currency: "aud", UnitAmount: 1999, Quantity: 1,
	}, provider.lastParams.LineItems[0])
	assert.Equal(t, payment.LineItem{
		Name: "Wool Scarf", Currency: "aud", UnitAmount: 2450, Quantity: 1,
	}, provider.lastParams.LineItems[1])

	assert.Equal(t, order.ID, provider.lastParams.OrderID)
	assert.Equal(t, "https://shop.example/cart?success=1", provider.lastParams.SuccessURL)
	assert.Equal(t, "https://shop.example/cart?canceled=1", provider.lastParams.CancelURL)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, order.ID, publisher.published[0].OrderID)
	assert.Equal(t, []string{"v1", "v2"}, publisher.published[0].VariantIDs)
}

func TestCheckoutPricingNoRoundingDrift(t *testing.T) {
	prices := []string{"0.01", "10.10", "99.99", "1234.56"}
	store := &mockCheckoutStore{}
	ids := make([]string, len(prices))
	var wantTotal int64
	for i, p := range prices {
		id := fmt.Sprintf("v%d", i)
		store.variants = append(store.variants, checkoutVariant(id, "Item", p, 1))
		ids[i] = id
		wantTotal += decimal.RequireFromString(p).Mul(decimal.NewFromInt(100)).IntPart()
	}
	provider := &mockProvider{}
	assembler := newTestAssembler(ausStore(), store, provider, &mockPublisher{})

	_, err := assembler.Checkout(context.Background(), "store-1", ids)
	require.NoError(t, err)

	var total int64
	for _, item := range provider.lastParams.LineItems {
		total += item.UnitAmount
	}
	assert.Equal(t, wantTotal, total)
}

func TestCheckoutOutOfStock(t *testing.T) {
	store := &mockCheckoutStore{variants: []models.Variant{
		checkoutVariant("v1", "Linen Shirt", "19.99", 0),
		checkoutVariant("v2", "Wool Scarf", "24.50", 3),
	}}
	provider := &mockProvider{}
	assembler := newTestAssembler(ausStore(), store, provider, &mockPublisher{})

	_, err := assembler.Checkout(context.Background(), "store-1", []string{"v1", "v2"})

	var oos *OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, []string{"v1"}, oos.VariantIDs)

	// The gate runs before any write: no order, no session.
	assert.Empty(t, store.orders)
	assert.Empty(t, provider.lastParams.LineItems)
}

func TestCheckoutEmptyCart(t *testing.T) {
	store := &mockCheckoutStore{}
	assembler := newTestAssembler(ausStore(), store, &mockProvider{}, &mockPublisher{})

	_, err := assembler.Checkout(context.Background(), "store-1", []string{"missing"})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, store.orders)
}

func TestCheckoutArchivedVariantsIgnored(t *testing.T) {
	archived := checkoutVariant("v1", "Linen Shirt", "19.99", 5)
	archived.IsArchived = true
	store := &mockCheckoutStore{variants: []models.Variant{archived}}
	assembler := newTestAssembler(ausStore(), store, &mockProvider{}, &mockPublisher{})

	_, err := assembler.Checkout(context.Background(), "store-1", []string{"v1"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutDuplicateIDsCollapse(t *testing.T) {
	store := &mockCheckoutStore{variants: []models.Variant{
		checkoutVariant("v1", "Linen Shirt", "19.99", 5),
	}}
	provider := &mockProvider{}
	assembler := newTestAssembler(ausStore(), store, provider, &mockPublisher{})

	_, err := assembler.Checkout(context.Background(), "store-1", []string{"v1", "v1"})
	require.NoError(t, err)

	require.Len(t, store.orders, 1)
	assert.Len(t, store.orders[0].OrderItems, 1)
	assert.Len(t, provider.lastParams.LineItems, 1)
}

func TestCheckoutUnknownStore(t *testing.T) {
	store := &mockCheckoutStore{}
	assembler := newTestAssembler(&mockStoreFinder{}, store, &mockProvider{}, &mockPublisher{})

	_, err := assembler.Checkout(context.Background(), "store-x", []string{"v1"})
	assert.ErrorIs(t, err, models.ErrStoreNotFound)
}

func TestCheckoutProviderFailureLeavesOrder(t *testing.T) {
	store := &mockCheckoutStore{variants: []models.Variant{
		checkoutVariant("v1", "Linen Shirt", "19.99", 5),
	}}
	provider := &mockProvider{err: fmt.Errorf("provider unavailable")}
	assembler := newTestAssembler(ausStore(), store, provider, &mockPublisher{})

	_, err := assembler.Checkout(context.Background(), "store-1", []string{"v1"})
	require.Error(t, err)

	// The committed order is the accepted orphan; it is not rolled back.
	assert.Len(t, store.orders, 1)
}

func TestCheckoutPublishFailureIsNotFatal(t *testing.T) {
	store := &mockCheckoutStore{variants: []models.Variant{
		checkoutVariant("v1", "Linen Shirt", "19.99", 5),
	}}
	publisher := &mockPublisher{err: fmt.Errorf("broker down")}
	assembler := newTestAssembler(ausStore(), store, &mockProvider{}, publisher)

	url, err := assembler.Checkout(context.Background(), "store-1", []string{"v1"})
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}
