package domain

import "github.com/shopspring/decimal"

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
}

// Variant is a purchasable configuration of a product. IDs are unique across
// the whole catalog because the cart is keyed by them.
type Variant struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	Images      []Image   `json:"images"`
	Variants    []Variant `json:"variants"`
}

func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// FirstImage returns nil for products without images.
func (p Product) FirstImage() *Image {
	if len(p.Images) == 0 {
		return nil
	}
	img := p.Images[0]
	return &img
}

// FindVariant scans the catalog for the product owning variantID.
func FindVariant(products []Product, variantID string) (Product, Variant, bool) {
	for _, p := range products {
		if v, ok := p.Variant(variantID); ok {
			return p, v, true
		}
	}
	return Product{}, Variant{}, false
}
