package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog fallback reasons.
const (
	ReasonNotConfigured = "not_configured"
	ReasonProviderError = "provider_error"
)

// Checkout outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeDemoMode  = "demo_mode"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
	OutcomeEmptyCart = "empty_cart"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		},
		[]string{"method", "path"},
	)

	CatalogFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_fallback_total",
			Help: "Catalog requests served from the built-in mock catalog",
		},
		[]string{"reason"},
	)

	Checkouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkout_total",
			Help: "Checkout session attempts by outcome",
		},
		[]string{"outcome"},
	)
)
