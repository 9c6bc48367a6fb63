package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/catalog"
	"github.com/Ansh037/ShopifyCheckout/internal/checkout"
	"github.com/Ansh037/ShopifyCheckout/internal/domain"
)

type mockGateway struct {
	m       sync.Mutex
	got     []domain.CheckoutLineItem
	url     string
	err     error
	started chan struct{}
	release chan struct{}
}

func (m *mockGateway) CreateCheckoutSession(_ context.Context, items []domain.CheckoutLineItem) (string, error) {
	m.m.Lock()
	m.got = items
	m.m.Unlock()

	if m.started != nil {
		close(m.started)
		<-m.release
	}
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

func (m *mockGateway) received() []domain.CheckoutLineItem {
	m.m.Lock()
	defer m.m.Unlock()
	return m.got
}

func line(variantID string, quantity int, price string) domain.CartLineItem {
	return domain.CartLineItem{
		VariantID: variantID,
		Quantity:  quantity,
		Product: domain.ProductSnapshot{
			ID:    "p-" + variantID,
			Title: "Product " + variantID,
			Price: decimal.RequireFromString(price),
		},
	}
}

func newStore() *Store {
	return NewStore(&mockGateway{}, zap.NewNop())
}

func TestAddToCart_SameVariantMerges(t *testing.T) {
	s := newStore()
	require.NoError(t, s.AddToCart(line("v1", 2, "2499.00")))
	require.NoError(t, s.AddToCart(line("v1", 3, "2499.00")))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddToCart_AppendsInInsertionOrder(t *testing.T) {
	s := newStore()
	require.NoError(t, s.AddToCart(line("v2", 1, "10")))
	require.NoError(t, s.AddToCart(line("v1", 1, "10")))
	require.NoError(t, s.AddToCart(line("v2", 1, "10")))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "v2", items[0].VariantID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "v1", items[1].VariantID)
}

func TestAddToCart_RejectsInvalidItems(t *testing.T) {
	s := newStore()
	assert.ErrorIs(t, s.AddToCart(line("", 1, "10")), ErrInvalidItem)
	assert.ErrorIs(t, s.AddToCart(line("v1", 0, "10")), ErrInvalidItem)
	assert.ErrorIs(t, s.AddToCart(line("v1", -2, "10")), ErrInvalidItem)
	assert.Empty(t, s.Items())
}

func TestUpdateQuantity(t *testing.T) {
	s := newStore()
	require.NoError(t, s.AddToCart(line("v1", 2, "10")))
	require.NoError(t, s.AddToCart(line("v2", 1, "10")))

	s.UpdateQuantity("v1", 7)
	assert.Equal(t, 7, s.Items()[0].Quantity, "set, not increment")

	s.UpdateQuantity("v1", 0)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "v2", items[0].VariantID)

	s.UpdateQuantity("v2", -3)
	assert.Empty(t, s.Items())
}

func TestUpdateQuantity_AbsentVariantIsNoop(t *testing.T) {
	s := newStore()
	require.NoError(t, s.AddToCart(line("v1", 2, "10")))

	s.UpdateQuantity("missing", 4)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "v1", items[0].VariantID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveFromCart(t *testing.T) {
	s := newStore()
	require.NoError(t, s.AddToCart(line("v1", 1, "10")))
	require.NoError(t, s.AddToCart(line("v2", 1, "10")))
	require.NoError(t, s.AddToCart(line("v3", 1, "10")))

	before := s.Items()
	s.RemoveFromCart("missing")
	assert.Equal(t, before, s.Items())

	s.RemoveFromCart("v2")
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "v1", items[0].VariantID)
	assert.Equal(t, "v3", items[1].VariantID)
}

func TestClearCart(t *testing.T) {
	s := newStore()
	require.NoError(t, s.AddToCart(line("v1", 1, "10")))
	s.ClearCart()

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
	assert.True(t, s.TotalPrice().IsZero())
}

func TestTotals(t *testing.T) {
	s := newStore()
	assert.Equal(t, 0, s.TotalItems())
	assert.True(t, s.TotalPrice().Equal(decimal.Zero))

	require.NoError(t, s.AddToCart(line("v1", 2, "2499.00")))
	require.NoError(t, s.AddToCart(line("v2", 3, "1579.50")))

	assert.Equal(t, 5, s.TotalItems())
	assert.True(t, s.TotalPrice().Equal(decimal.RequireFromString("9736.50")), s.TotalPrice().String())
}

func TestTotalPrice_UsesAddTimeSnapshot(t *testing.T) {
	products := catalog.Mock()
	p, v, ok := domain.FindVariant(products, "variant-1")
	require.True(t, ok)

	s := newStore()
	require.NoError(t, s.AddToCart(domain.NewLineItem(p, v, 2)))

	// a later catalog price change must not leak into the cart
	products[0].Variants[0].Price = decimal.RequireFromString("9999.00")

	assert.True(t, s.TotalPrice().Equal(decimal.RequireFromString("4998.00")))
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := newStore()
	require.NoError(t, s.AddToCart(line("v1", 1, "10")))

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestCheckout_SendsLinesInCartOrder(t *testing.T) {
	gw := &mockGateway{url: "https://shop/checkouts/1"}
	s := NewStore(gw, zap.NewNop())
	require.NoError(t, s.AddToCart(line("v2", 1, "10")))
	require.NoError(t, s.AddToCart(line("v1", 4, "10")))

	url, ok := s.CreateCheckout(context.Background())
	require.True(t, ok)
	assert.Equal(t, "https://shop/checkouts/1", url)
	assert.Equal(t, []domain.CheckoutLineItem{{VariantID: "v2", Quantity: 1}, {VariantID: "v1", Quantity: 4}}, gw.received())
}

func TestCreateCheckout_FailureReturnsFalseAndKeepsCart(t *testing.T) {
	s := NewStore(checkout.NewGateway(nil, nil, zap.NewNop()), zap.NewNop())
	require.NoError(t, s.AddToCart(line("v1", 2, "2499.00")))
	before := s.Items()

	url, ok := s.CreateCheckout(context.Background())
	assert.False(t, ok)
	assert.Empty(t, url)
	assert.Equal(t, before, s.Items())

	_, err := s.Checkout(context.Background())
	assert.ErrorIs(t, err, checkout.ErrDemoMode)
	assert.Equal(t, before, s.Items())
}

func TestCheckout_ErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	s := NewStore(&mockGateway{err: boom}, zap.NewNop())
	require.NoError(t, s.AddToCart(line("v1", 1, "10")))

	_, err := s.Checkout(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCheckout_SnapshotTakenAtCallTime(t *testing.T) {
	gw := &mockGateway{url: "https://shop/c", started: make(chan struct{}), release: make(chan struct{})}
	s := NewStore(gw, zap.NewNop())
	require.NoError(t, s.AddToCart(line("v1", 1, "10")))

	done := make(chan string)
	go func() {
		url, _ := s.CreateCheckout(context.Background())
		done <- url
	}()

	select {
	case <-gw.started:
	case <-time.After(time.Second):
		t.Fatal("checkout did not start")
	}

	// mutations while the request is in flight must not block or leak into it
	s.UpdateQuantity("v1", 5)
	require.NoError(t, s.AddToCart(line("v2", 1, "10")))
	close(gw.release)

	assert.Equal(t, "https://shop/c", <-done)
	assert.Equal(t, []domain.CheckoutLineItem{{VariantID: "v1", Quantity: 1}}, gw.received())
	assert.Equal(t, 6, s.TotalItems())
}

func TestConcurrentMutations(t *testing.T) {
	s := newStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.AddToCart(line("v1", 1, "2.50")))
			_ = s.TotalPrice()
			_ = s.Items()
		}()
	}
	wg.Wait()

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)
	assert.True(t, s.TotalPrice().Equal(decimal.RequireFromString("125")))
}
