package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ansh037/ShopifyCheckout/internal/domain"
)

type Checkout struct {
	ID         string `json:"id"`
	WebURL     string `json:"webUrl"`
	TotalPrice struct {
		Amount string `json:"amount"`
	} `json:"totalPrice"`
	LineItems struct {
		Edges []struct {
			Node struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Quantity int    `json:"quantity"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

type CheckoutUserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// CheckoutCreatePayload is the checkoutCreate result: either a checkout or
// a list of user-facing validation errors.
type CheckoutCreatePayload struct {
	Checkout           *Checkout           `json:"checkout"`
	CheckoutUserErrors []CheckoutUserError `json:"checkoutUserErrors"`
}

func (c *Client) CreateCheckout(ctx context.Context, items []domain.CheckoutLineItem) (*CheckoutCreatePayload, error) {
	variables := map[string]any{
		"input": map[string]any{
			"lineItems": items,
		},
	}

	data, err := c.Execute(ctx, CheckoutCreateMutation, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	var result struct {
		CheckoutCreate CheckoutCreatePayload `json:"checkoutCreate"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse checkout response: %w", err)
	}
	return &result.CheckoutCreate, nil
}
