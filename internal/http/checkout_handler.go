package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/checkout"
	"github.com/Ansh037/ShopifyCheckout/pkg/logger"
)

type CheckoutHandler struct {
	timeout time.Duration
	logger  *zap.Logger
}

func NewCheckoutHandler(timeout time.Duration, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		timeout: timeout,
		logger:  logger,
	}
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckout hands the session's cart to the provider. The cart is left
// as it is whatever the outcome.
func (h *CheckoutHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	// Without a session there is nothing to check out.
	store := existingCart(ctx)
	if store == nil {
		respondError(w, http.StatusBadRequest, "empty_cart", checkout.ErrEmptyCart.Error())
		return
	}

	checkoutURL, err := store.Checkout(ctx)
	if err != nil {
		h.handleCheckoutError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponse{CheckoutURL: checkoutURL})
}

// handleCheckoutError maps gateway errors to responses. reqCtx is the request
// context: once its deadline has passed the router's timeout middleware sends
// the 504, so nothing is written here.
func (h *CheckoutHandler) handleCheckoutError(reqCtx context.Context, w http.ResponseWriter, err error) {
	var userErr *checkout.UserError

	switch {
	case errors.Is(reqCtx.Err(), context.DeadlineExceeded):
		logger.WithContext(reqCtx, h.logger).Warn("checkout abandoned, request deadline exceeded", zap.Error(err))
	case errors.Is(err, checkout.ErrDemoMode):
		respondError(w, http.StatusServiceUnavailable, "demo_mode", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.As(err, &userErr):
		respondError(w, http.StatusUnprocessableEntity, "checkout_rejected", userErr.Message)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "checkout provider did not respond in time")
	default:
		logger.WithContext(reqCtx, h.logger).Error("checkout failed", zap.Error(err))
		respondErrorDetails(w, http.StatusBadGateway, "checkout_failed", "unable to create checkout", err.Error())
	}
}
