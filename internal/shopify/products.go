package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Ansh037/ShopifyCheckout/internal/domain"
)

type productsData struct {
	Products struct {
		Edges []struct {
			Node productNode `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

type productNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
	Images      struct {
		Edges []struct {
			Node struct {
				URL     string  `json:"url"`
				AltText *string `json:"altText"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node struct {
				ID    string `json:"id"`
				Title string `json:"title"`
				Price struct {
					Amount string `json:"amount"`
				} `json:"price"`
				AvailableForSale bool `json:"availableForSale"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

// Products fetches up to first products and flattens the edge/node shape.
func (c *Client) Products(ctx context.Context, first int) ([]domain.Product, error) {
	data, err := c.Execute(ctx, ProductsQuery, map[string]any{"first": first})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	var result productsData
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}

	products := make([]domain.Product, 0, len(result.Products.Edges))
	for _, edge := range result.Products.Edges {
		p, err := toProduct(edge.Node)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func toProduct(n productNode) (domain.Product, error) {
	p := domain.Product{
		ID:          n.ID,
		Title:       n.Title,
		Handle:      n.Handle,
		Description: n.Description,
		Images:      make([]domain.Image, 0, len(n.Images.Edges)),
		Variants:    make([]domain.Variant, 0, len(n.Variants.Edges)),
	}

	for _, e := range n.Images.Edges {
		img := domain.Image{URL: e.Node.URL}
		if e.Node.AltText != nil {
			img.AltText = *e.Node.AltText
		}
		p.Images = append(p.Images, img)
	}

	for _, e := range n.Variants.Edges {
		price, err := decimal.NewFromString(e.Node.Price.Amount)
		if err != nil {
			return domain.Product{}, fmt.Errorf("variant %s has invalid price %q: %w", e.Node.ID, e.Node.Price.Amount, err)
		}
		p.Variants = append(p.Variants, domain.Variant{
			ID:        e.Node.ID,
			Title:     e.Node.Title,
			Price:     price,
			Available: e.Node.AvailableForSale,
		})
	}
	return p, nil
}
