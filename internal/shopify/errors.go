package shopify

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("storefront API unavailable")

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("storefront API error: status %d - %s", e.StatusCode, e.Status)
}

// GraphQLError carries the top-level "errors" of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	if len(e.Messages) == 0 || e.Messages[0] == "" {
		return "GraphQL error"
	}
	return e.Messages[0]
}
