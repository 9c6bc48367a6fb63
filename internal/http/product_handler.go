package http

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ansh037/ShopifyCheckout/internal/catalog"
	"github.com/Ansh037/ShopifyCheckout/internal/currency"
	"github.com/Ansh037/ShopifyCheckout/internal/domain"
)

// Catalog is the read side of the catalog gateway.
type Catalog interface {
	Load(ctx context.Context) catalog.Listing
	Lookup(ctx context.Context, variantID string) (domain.Product, domain.Variant, bool)
}

type ProductHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewProductHandler(c Catalog, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: c,
		timeout: timeout,
	}
}

type VariantDTO struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Price          string `json:"price"`
	PriceFormatted string `json:"price_formatted"`
	Available      bool   `json:"available"`
}

type ProductDTO struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Handle      string         `json:"handle"`
	Description string         `json:"description"`
	Images      []domain.Image `json:"images"`
	Variants    []VariantDTO   `json:"variants"`
	// PriceFrom is the lowest variant price, formatted.
	PriceFrom string `json:"price_from,omitempty"`
}

type ProductsResponse struct {
	Products []ProductDTO `json:"products"`
	Mock     bool         `json:"mock"`
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	listing := h.catalog.Load(ctx)

	resp := ProductsResponse{
		Products: make([]ProductDTO, 0, len(listing.Products)),
		Mock:     listing.Mock,
	}
	for _, p := range listing.Products {
		resp.Products = append(resp.Products, toProductDTO(p))
	}

	respondJSON(w, http.StatusOK, resp)
}

func toProductDTO(p domain.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		Handle:      p.Handle,
		Description: p.Description,
		Images:      p.Images,
		Variants:    make([]VariantDTO, 0, len(p.Variants)),
	}
	if dto.Images == nil {
		dto.Images = []domain.Image{}
	}

	var lowest *decimal.Decimal
	for _, v := range p.Variants {
		dto.Variants = append(dto.Variants, VariantDTO{
			ID:             v.ID,
			Title:          v.Title,
			Price:          v.Price.StringFixed(2),
			PriceFormatted: currency.Format(v.Price),
			Available:      v.Available,
		})
		if lowest == nil || v.Price.LessThan(*lowest) {
			price := v.Price
			lowest = &price
		}
	}
	if lowest != nil {
		dto.PriceFrom = currency.Format(*lowest)
	}
	return dto
}
