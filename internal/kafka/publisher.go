package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	TopicOrderCreated        = "pedidos.order.created"
	TopicOrderStatusChanged  = "pedidos.order.status_changed"
	TopicPaymentNotification = "pedidos.payment.notification"
)

// Publisher writes order and payment events to Kafka as JSON messages keyed by
// the order or resource id.
type Publisher struct {
	writer *kafkago.Writer
}

// NewPublisher constructs a Publisher connected to the given brokers.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Balancer:               &kafkago.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, orderID string) error {
	return p.publish(ctx, TopicOrderCreated, orderID, map[string]any{
		"order_id":    orderID,
		"occurred_at": time.Now().UTC(),
	})
}

func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, orderID string, status string) error {
	return p.publish(ctx, TopicOrderStatusChanged, orderID, map[string]any{
		"order_id":    orderID,
		"status":      status,
		"occurred_at": time.Now().UTC(),
	})
}

func (p *Publisher) PublishPaymentNotification(ctx context.Context, notificationType, resourceID string) error {
	return p.publish(ctx, TopicPaymentNotification, resourceID, map[string]any{
		"type":        notificationType,
		"resource_id": resourceID,
		"occurred_at": time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, topic, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: body,
	})
	if err != nil {
		return fmt.Errorf("write %s event: %w", topic, err)
	}

	return nil
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
