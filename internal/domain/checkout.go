package domain

// CheckoutLineItem is one element of a checkout request sent to the provider.
type CheckoutLineItem struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

func CheckoutLines(items []CartLineItem) []CheckoutLineItem {
	lines := make([]CheckoutLineItem, len(items))
	for i, item := range items {
		lines[i] = CheckoutLineItem{VariantID: item.VariantID, Quantity: item.Quantity}
	}
	return lines
}
