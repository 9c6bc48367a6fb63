package domain

import "github.com/shopspring/decimal"

// ProductSnapshot is the denormalized product data captured when a line is
// added. Price is the unit price of the selected variant at add-time.
type ProductSnapshot struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Handle string          `json:"handle"`
	Image  *Image          `json:"image,omitempty"`
	Price  decimal.Decimal `json:"price"`
}

type CartLineItem struct {
	VariantID string          `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	Product   ProductSnapshot `json:"product"`
}

func NewLineItem(p Product, v Variant, quantity int) CartLineItem {
	return CartLineItem{
		VariantID: v.ID,
		Quantity:  quantity,
		Product: ProductSnapshot{
			ID:     p.ID,
			Title:  p.Title,
			Handle: p.Handle,
			Image:  p.FirstImage(),
			Price:  v.Price,
		},
	}
}

func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
