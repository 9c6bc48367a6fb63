package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/checkout"
	"github.com/Ansh037/ShopifyCheckout/internal/domain"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestCheckoutCreated_PublishesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisher(w, zap.NewNop())
	createdAt := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	err := p.CheckoutCreated(context.Background(), checkout.Created{
		CheckoutID:  "gid://shopify/Checkout/9",
		CheckoutURL: "https://shop/checkouts/9",
		LineItems:   []domain.CheckoutLineItem{{VariantID: "variant-1", Quantity: 2}, {VariantID: "variant-8", Quantity: 3}},
		CreatedAt:   createdAt,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	var payload CheckoutCreated
	require.NoError(t, json.Unmarshal(msg.Value, &payload))

	assert.Equal(t, string(msg.Key), payload.EventID)
	assert.NotEmpty(t, payload.EventID)
	assert.Equal(t, "gid://shopify/Checkout/9", payload.CheckoutID)
	assert.Equal(t, "https://shop/checkouts/9", payload.CheckoutURL)
	assert.Equal(t, 5, payload.TotalItems)
	assert.True(t, createdAt.Equal(payload.CreatedAt))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "checkout.created", string(msg.Headers[0].Value))
}

func TestCheckoutCreated_WriterError(t *testing.T) {
	p := NewPublisher(&fakeWriter{err: errors.New("no brokers")}, zap.NewNop())

	err := p.CheckoutCreated(context.Background(), checkout.Created{})
	assert.ErrorContains(t, err, "publish checkout event failed: no brokers")
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	NewPublisher(w, zap.NewNop()).Close()
	assert.True(t, w.closed)
}
