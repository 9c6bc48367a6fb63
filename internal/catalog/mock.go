package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/Ansh037/ShopifyCheckout/internal/domain"
)

// Mock returns the built-in demo catalog. The content is fixed and a new copy
// is built on every call, so callers may modify the result.
func Mock() []domain.Product {
	return []domain.Product{
		{
			ID:          "mock-1",
			Title:       "Premium Cotton T-Shirt",
			Handle:      "premium-cotton-tshirt",
			Description: "Soft, comfortable cotton t-shirt perfect for everyday wear. Made from 100% organic cotton with a relaxed fit.",
			Images:      mockImage("photo-1521572163474-6864f9cf17ab", "Premium Cotton T-Shirt"),
			Variants: []domain.Variant{
				variant("variant-1", "Small / Black", "2499.00", true),
				variant("variant-2", "Medium / Black", "2499.00", true),
				variant("variant-3", "Large / Black", "2499.00", false),
				variant("variant-4", "Small / White", "2499.00", true),
			},
		},
		{
			ID:          "mock-2",
			Title:       "Wireless Bluetooth Headphones",
			Handle:      "wireless-bluetooth-headphones",
			Description: "High-quality wireless headphones with active noise cancellation, 30-hour battery life, and premium sound quality.",
			Images:      mockImage("photo-1505740420928-5e560c06d30e", "Wireless Bluetooth Headphones"),
			Variants: []domain.Variant{
				variant("variant-5", "Black", "16599.00", true),
				variant("variant-6", "White", "16599.00", true),
				variant("variant-7", "Silver", "18249.00", true),
			},
		},
		{
			ID:          "mock-3",
			Title:       "Stainless Steel Water Bottle",
			Handle:      "stainless-steel-water-bottle",
			Description: "Double-wall insulated stainless steel water bottle that keeps drinks cold for 24 hours or hot for 12 hours. BPA-free and leak-proof.",
			Images:      mockImage("photo-1602143407151-7111542de6e8", "Stainless Steel Water Bottle"),
			Variants: []domain.Variant{
				variant("variant-8", "500ml / Silver", "2899.00", true),
				variant("variant-9", "750ml / Silver", "3319.00", true),
				variant("variant-10", "1L / Silver", "3729.00", true),
				variant("variant-11", "500ml / Black", "2899.00", false),
			},
		},
		{
			ID:          "mock-4",
			Title:       "Leather Crossbody Bag",
			Handle:      "leather-crossbody-bag",
			Description: "Handcrafted genuine leather crossbody bag with adjustable strap, multiple compartments, and vintage brass hardware.",
			Images:      mockImage("photo-1553062407-98eeb64c6a62", "Leather Crossbody Bag"),
			Variants: []domain.Variant{
				variant("variant-12", "Brown", "7459.00", true),
				variant("variant-13", "Black", "7459.00", false),
				variant("variant-14", "Tan", "7869.00", true),
			},
		},
		{
			ID:          "mock-5",
			Title:       "Smart Fitness Watch",
			Handle:      "smart-fitness-watch",
			Description: "Advanced fitness tracking watch with heart rate monitoring, GPS, sleep tracking, and 7-day battery life.",
			Images:      mockImage("photo-1523275335684-37898b6baf30", "Smart Fitness Watch"),
			Variants: []domain.Variant{
				variant("variant-15", "42mm / Black", "24899.00", true),
				variant("variant-16", "46mm / Black", "27369.00", true),
				variant("variant-17", "42mm / Silver", "24899.00", true),
			},
		},
		{
			ID:          "mock-6",
			Title:       "Organic Coffee Beans",
			Handle:      "organic-coffee-beans",
			Description: "Premium single-origin organic coffee beans, medium roast with notes of chocolate and caramel. Freshly roasted weekly.",
			Images:      mockImage("photo-1559056199-641a0ac8b55e", "Organic Coffee Beans"),
			Variants: []domain.Variant{
				variant("variant-18", "12oz / Whole Bean", "1579.00", true),
				variant("variant-19", "12oz / Ground", "1579.00", true),
				variant("variant-20", "2lb / Whole Bean", "4559.00", true),
			},
		},
	}
}

func variant(id, title, price string, available bool) domain.Variant {
	return domain.Variant{
		ID:        id,
		Title:     title,
		Price:     decimal.RequireFromString(price),
		Available: available,
	}
}

func mockImage(photo, alt string) []domain.Image {
	return []domain.Image{{
		URL:     "https://images.unsplash.com/" + photo + "?w=400&h=400&fit=crop&crop=center",
		AltText: alt,
	}}
}
