package kafka

import (
	"context"
	"log/slog"
)

// NoopEventBus logs events without sending them anywhere. Used when no Kafka
// brokers are configured.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishOrderCreated(_ context.Context, orderID string) error {
	slog.Debug("event::order_created", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderStatusChanged(_ context.Context, orderID string, status string) error {
	slog.Debug("event::order_status_changed", "order_id", orderID, "status", status)
	return nil
}

func (n *NoopEventBus) PublishPaymentNotification(_ context.Context, notificationType, resourceID string) error {
	slog.Debug("event::payment_notification", "type", notificationType, "resource_id", resourceID)
	return nil
}
