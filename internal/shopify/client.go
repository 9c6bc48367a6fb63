package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/config"
	"github.com/Ansh037/ShopifyCheckout/pkg/circuitbreaker"
	"github.com/Ansh037/ShopifyCheckout/pkg/logger"
)

const accessTokenHeader = "X-Shopify-Storefront-Access-Token"

// Client talks to the Shopify Storefront GraphQL API.
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker[json.RawMessage]
	logger      *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithBreaker(cb *gobreaker.CircuitBreaker[json.RawMessage]) Option {
	return func(c *Client) { c.breaker = cb }
}

// NewClient creates a new Storefront GraphQL client. Callers are expected to
// check cfg.Configured() first.
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint:    Endpoint(cfg),
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
	c.breaker = circuitbreaker.New[json.RawMessage](circuitbreaker.Options{
		Name:         "shopify-storefront",
		IsSuccessful: countsAsSuccess,
	}, logger)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint builds the Storefront GraphQL URL. A domain without a scheme is
// served over https.
func Endpoint(cfg config.ShopifyConfig) string {
	domain := strings.TrimSuffix(strings.TrimSpace(cfg.ShopDomain), "/")
	if !strings.HasPrefix(domain, "https://") && !strings.HasPrefix(domain, "http://") {
		domain = "https://" + domain
	}
	return fmt.Sprintf("%s/api/%s/graphql.json", domain, cfg.APIVersion)
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// Execute runs a query or mutation and returns the raw "data" object.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	data, err := c.breaker.Execute(func() (json.RawMessage, error) {
		return c.do(ctx, query, variables)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return data, err
}

func (c *Client) do(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	log := logger.WithContext(ctx, c.logger)

	jsonData, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, c.accessToken)

	log.Debug("storefront request", zap.String("url", c.endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("storefront API error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(body), 512)),
		)
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode), Body: string(body)}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			messages[i] = e.Message
		}
		log.Error("storefront GraphQL errors", zap.Strings("errors", messages))
		return nil, &GraphQLError{Messages: messages}
	}

	return gqlResp.Data, nil
}

// countsAsSuccess keeps caller-side cancellation from tripping the breaker.
func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
