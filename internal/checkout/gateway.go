package checkout

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/domain"
	"github.com/Ansh037/ShopifyCheckout/internal/metrics"
	"github.com/Ansh037/ShopifyCheckout/internal/shopify"
	"github.com/Ansh037/ShopifyCheckout/pkg/logger"
)

var (
	ErrDemoMode      = errors.New("Demo mode: Checkout functionality requires Shopify configuration. See README for setup instructions.")
	ErrEmptyCart     = errors.New("cannot create a checkout for an empty cart")
	ErrEmptyResponse = errors.New("storefront returned neither a checkout nor user errors")
)

// UserError is a validation error reported by the provider. Error returns the
// provider's message verbatim.
type UserError struct {
	Field   []string
	Message string
}

func (e *UserError) Error() string { return e.Message }

// CheckoutCreator is implemented by the Storefront client.
type CheckoutCreator interface {
	CreateCheckout(ctx context.Context, items []domain.CheckoutLineItem) (*shopify.CheckoutCreatePayload, error)
}

// Notifier is told about every successfully created checkout.
type Notifier interface {
	CheckoutCreated(ctx context.Context, ev Created) error
}

type Created struct {
	CheckoutID  string
	CheckoutURL string
	LineItems   []domain.CheckoutLineItem
	CreatedAt   time.Time
}

type Gateway struct {
	creator  CheckoutCreator
	notifier Notifier
	logger   *zap.Logger
}

// NewGateway builds a checkout gateway. A nil creator puts the gateway in demo
// mode; notifier may be nil.
func NewGateway(creator CheckoutCreator, notifier Notifier, logger *zap.Logger) *Gateway {
	return &Gateway{
		creator:  creator,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateCheckoutSession performs one provider round trip and returns the
// provider's redirect URL unmodified.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, items []domain.CheckoutLineItem) (string, error) {
	log := logger.WithContext(ctx, g.logger)

	if g.creator == nil {
		log.Info("simulating checkout, storefront credentials not configured")
		metrics.Checkouts.WithLabelValues(metrics.OutcomeDemoMode).Inc()
		return "", ErrDemoMode
	}
	if len(items) == 0 {
		metrics.Checkouts.WithLabelValues(metrics.OutcomeEmptyCart).Inc()
		return "", ErrEmptyCart
	}

	payload, err := g.creator.CreateCheckout(ctx, items)
	if err != nil {
		log.Error("error creating checkout", zap.Error(err))
		metrics.Checkouts.WithLabelValues(metrics.OutcomeFailed).Inc()
		return "", err
	}

	if len(payload.CheckoutUserErrors) > 0 {
		first := payload.CheckoutUserErrors[0]
		log.Warn("checkout rejected by storefront",
			zap.String("message", first.Message),
			zap.Strings("field", first.Field),
			zap.Int("errors", len(payload.CheckoutUserErrors)),
		)
		metrics.Checkouts.WithLabelValues(metrics.OutcomeRejected).Inc()
		return "", &UserError{Field: first.Field, Message: first.Message}
	}
	if payload.Checkout == nil || payload.Checkout.WebURL == "" {
		metrics.Checkouts.WithLabelValues(metrics.OutcomeFailed).Inc()
		return "", ErrEmptyResponse
	}

	metrics.Checkouts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("checkout created", zap.String("checkout_id", payload.Checkout.ID), zap.Int("lines", len(items)))

	if g.notifier != nil {
		ev := Created{
			CheckoutID:  payload.Checkout.ID,
			CheckoutURL: payload.Checkout.WebURL,
			LineItems:   items,
			CreatedAt:   time.Now().UTC(),
		}
		if err := g.notifier.CheckoutCreated(ctx, ev); err != nil {
			log.Warn("checkout notification failed", zap.Error(err))
		}
	}

	return payload.Checkout.WebURL, nil
}
