package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/cart"
	"github.com/Ansh037/ShopifyCheckout/internal/currency"
	"github.com/Ansh037/ShopifyCheckout/internal/domain"
	"github.com/Ansh037/ShopifyCheckout/pkg/logger"
)

// MaxQuantity bounds a single request's quantity.
const MaxQuantity = 99

// TaxRate is the GST applied on top of the cart subtotal for display.
var TaxRate = decimal.RequireFromString("0.18")

type CartHandler struct {
	catalog Catalog
	timeout time.Duration
	logger  *zap.Logger
}

func NewCartHandler(c Catalog, timeout time.Duration, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		catalog: c,
		timeout: timeout,
		logger:  logger,
	}
}

type AddItemRequestDTO struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartItemDTO struct {
	VariantID          string                 `json:"variant_id"`
	Quantity           int                    `json:"quantity"`
	Product            domain.ProductSnapshot `json:"product"`
	UnitPriceFormatted string                 `json:"unit_price_formatted"`
	LineTotal          string                 `json:"line_total"`
	LineTotalFormatted string                 `json:"line_total_formatted"`
}

type CartResponse struct {
	Items             []CartItemDTO `json:"items"`
	TotalItems        int           `json:"total_items"`
	Subtotal          string        `json:"subtotal"`
	Tax               string        `json:"tax"`
	Total             string        `json:"total"`
	SubtotalFormatted string        `json:"subtotal_formatted"`
	TaxFormatted      string        `json:"tax_formatted"`
	TotalFormatted    string        `json:"total_formatted"`
}

// GetCart reports an empty cart for clients without a session.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartResponse(existingCart(r.Context())))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.VariantID == "" {
		respondError(w, http.StatusBadRequest, "invalid_variant_id", "variant_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > MaxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	// Snapshot data comes from the catalog, never from the client.
	product, variant, ok := h.catalog.Lookup(ctx, req.VariantID)
	if !ok {
		respondError(w, http.StatusNotFound, "variant_not_found", "variant not found in catalog")
		return
	}
	if !variant.Available {
		respondError(w, http.StatusConflict, "variant_unavailable", "variant is out of stock")
		return
	}

	store, ok := ensureCart(w, r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "internal_error", "session handling is not configured")
		return
	}

	if err := store.AddToCart(domain.NewLineItem(product, variant, req.Quantity)); err != nil {
		if errors.Is(err, cart.ErrInvalidItem) {
			respondError(w, http.StatusBadRequest, "invalid_item", err.Error())
			return
		}
		logger.WithContext(ctx, h.logger).Error("add to cart failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, cartResponse(store))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	store := existingCart(r.Context())

	variantID, ok := variantParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_variant_id", "variant id is malformed")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Zero is allowed and removes the line.
	if req.Quantity < 0 || req.Quantity > MaxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	if store != nil {
		store.UpdateQuantity(variantID, req.Quantity)
	}
	respondJSON(w, http.StatusOK, cartResponse(store))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store := existingCart(r.Context())

	variantID, ok := variantParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_variant_id", "variant id is malformed")
		return
	}

	if store != nil {
		store.RemoveFromCart(variantID)
	}
	respondJSON(w, http.StatusOK, cartResponse(store))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := existingCart(r.Context())

	if store != nil {
		store.ClearCart()
	}
	respondJSON(w, http.StatusOK, cartResponse(store))
}

// variantParam decodes the path parameter. Storefront ids contain slashes, so
// clients send them escaped.
func variantParam(r *http.Request) (string, bool) {
	id, err := url.PathUnescape(chi.URLParam(r, "variantID"))
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

// cartResponse treats a nil store as an empty cart.
func cartResponse(store *cart.Store) CartResponse {
	var items []domain.CartLineItem
	if store != nil {
		items = store.Items()
	}

	resp := CartResponse{Items: make([]CartItemDTO, 0, len(items))}
	subtotal := decimal.Zero
	for _, item := range items {
		lineTotal := item.LineTotal()
		subtotal = subtotal.Add(lineTotal)
		resp.TotalItems += item.Quantity
		resp.Items = append(resp.Items, CartItemDTO{
			VariantID:          item.VariantID,
			Quantity:           item.Quantity,
			Product:            item.Product,
			UnitPriceFormatted: currency.Format(item.Product.Price),
			LineTotal:          lineTotal.StringFixed(2),
			LineTotalFormatted: currency.Format(lineTotal),
		})
	}

	tax := subtotal.Mul(TaxRate)
	total := subtotal.Add(tax)

	resp.Subtotal = subtotal.StringFixed(2)
	resp.Tax = tax.StringFixed(2)
	resp.Total = total.StringFixed(2)
	resp.SubtotalFormatted = currency.FormatCompact(subtotal)
	resp.TaxFormatted = currency.FormatCompact(tax)
	resp.TotalFormatted = currency.FormatCompact(total)
	return resp
}
