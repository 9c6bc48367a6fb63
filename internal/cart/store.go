package cart

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/domain"
	"github.com/Ansh037/ShopifyCheckout/pkg/logger"
)

var ErrInvalidItem = errors.New("line item needs a variant id and a quantity of at least 1")

// CheckoutGateway hands the cart's lines to the commerce provider.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, items []domain.CheckoutLineItem) (string, error)
}

// Store holds one session's cart. All mutations are serialised by mu and
// readers only ever see copies.
type Store struct {
	mu       sync.RWMutex
	items    []domain.CartLineItem
	checkout CheckoutGateway
	logger   *zap.Logger
}

func NewStore(checkout CheckoutGateway, logger *zap.Logger) *Store {
	return &Store{
		checkout: checkout,
		logger:   logger,
	}
}

// AddToCart increments the quantity of an existing line for the same variant,
// or appends a new line.
func (s *Store) AddToCart(item domain.CartLineItem) error {
	if item.VariantID == "" || item.Quantity < 1 {
		return ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.VariantID); i >= 0 {
		s.items[i].Quantity += item.Quantity
		return nil
	}
	s.items = append(s.items, item)
	return nil
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the line;
// unknown variants are ignored.
func (s *Store) UpdateQuantity(variantID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(variantID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		s.removeAt(i)
		return
	}
	s.items[i].Quantity = quantity
}

func (s *Store) RemoveFromCart(variantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(variantID); i >= 0 {
		s.removeAt(i)
	}
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a snapshot of the lines in insertion order.
func (s *Store) Items() []domain.CartLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the pre-tax subtotal using the prices captured at add-time.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Checkout sends the current lines to the checkout gateway. The lines are
// captured before the call, so later mutations do not affect the request, and
// the cart itself is never modified.
func (s *Store) Checkout(ctx context.Context) (string, error) {
	s.mu.RLock()
	lines := domain.CheckoutLines(s.items)
	s.mu.RUnlock()

	return s.checkout.CreateCheckoutSession(ctx, lines)
}

// CreateCheckout is Checkout with the error logged instead of returned.
func (s *Store) CreateCheckout(ctx context.Context) (string, bool) {
	url, err := s.Checkout(ctx)
	if err != nil {
		logger.WithContext(ctx, s.logger).Error("error creating checkout", zap.Error(err))
		return "", false
	}
	return url, true
}

func (s *Store) indexOf(variantID string) int {
	for i, item := range s.items {
		if item.VariantID == variantID {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.items = slices.Delete(s.items, i, i+1)
}

func (s *Store) snapshot() []domain.CartLineItem {
	out := make([]domain.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}
