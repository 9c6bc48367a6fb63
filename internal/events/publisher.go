package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/checkout"
	"github.com/Ansh037/ShopifyCheckout/internal/domain"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// CheckoutCreated is the JSON payload published for each created checkout.
type CheckoutCreated struct {
	EventID     string                    `json:"event_id"`
	CheckoutID  string                    `json:"checkout_id"`
	CheckoutURL string                    `json:"checkout_url"`
	LineItems   []domain.CheckoutLineItem `json:"line_items"`
	TotalItems  int                       `json:"total_items"`
	CreatedAt   time.Time                 `json:"created_at"`
}

type KafkaPublisher struct {
	writer MessageWriter
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return NewPublisher(writer, logger)
}

func NewPublisher(writer MessageWriter, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, logger: logger}
}

func (p *KafkaPublisher) CheckoutCreated(ctx context.Context, ev checkout.Created) error {
	total := 0
	for _, item := range ev.LineItems {
		total += item.Quantity
	}

	payload := CheckoutCreated{
		EventID:     uuid.NewString(),
		CheckoutID:  ev.CheckoutID,
		CheckoutURL: ev.CheckoutURL,
		LineItems:   ev.LineItems,
		TotalItems:  total,
		CreatedAt:   ev.CreatedAt,
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal checkout event failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.EventID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("checkout.created")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish checkout event failed: %w", err)
	}

	p.logger.Debug("published checkout event", zap.String("event_id", payload.EventID))
	return nil
}

func (p *KafkaPublisher) Close() {
	if err := p.writer.Close(); err != nil {
		p.logger.Warn("error closing kafka writer", zap.Error(err))
	}
}
