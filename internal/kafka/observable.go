package kafka

import (
	"context"
	"time"

	"github.com/sabordecasa/pedidos/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// EventBus is the full publishing surface exposed to the application layers.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, orderID string) error
	PublishOrderStatusChanged(ctx context.Context, orderID string, status string) error
	PublishPaymentNotification(ctx context.Context, notificationType, resourceID string) error
}

// ObservableEventBus decorates a bus with spans and publish latency metrics.
type ObservableEventBus struct {
	bus     EventBus
	metrics *Metrics
}

func NewObservableEventBus(bus EventBus, metrics *Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableEventBus) PublishOrderCreated(ctx context.Context, orderID string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderCreated")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("topic", TopicOrderCreated),
	)

	start := time.Now()
	err := e.bus.PublishOrderCreated(ctx, orderID)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, TopicOrderCreated, duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishOrderStatusChanged(ctx context.Context, orderID string, status string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderStatusChanged")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("order.new_status", status),
		attribute.String("topic", TopicOrderStatusChanged),
	)

	start := time.Now()
	err := e.bus.PublishOrderStatusChanged(ctx, orderID, status)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, TopicOrderStatusChanged, duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishPaymentNotification(ctx context.Context, notificationType, resourceID string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishPaymentNotification")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("notification.type", notificationType),
		attribute.String("notification.resource_id", resourceID),
		attribute.String("topic", TopicPaymentNotification),
	)

	start := time.Now()
	err := e.bus.PublishPaymentNotification(ctx, notificationType, resourceID)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, TopicPaymentNotification, duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
