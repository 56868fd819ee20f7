package adapters

import (
	"context"
	"time"

	"github.com/sabordecasa/pedidos/internal/database"
	"github.com/sabordecasa/pedidos/internal/orders/domain"
	"github.com/sabordecasa/pedidos/internal/orders/ports"
	"github.com/sabordecasa/pedidos/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) Create(ctx context.Context, order domain.Order) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Create")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.Int("order.item_count", len(order.Items)),
		attribute.String("operation", "create"),
	)

	start := time.Now()
	err := r.repo.Create(ctx, order)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "create_order", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) List(ctx context.Context) ([]domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.List")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "list"),
	)

	start := time.Now()
	orders, err := r.repo.List(ctx)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "list_orders", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(orders)))
	telemetry.SetSpanSuccess(span)
	return orders, nil
}

func (r *ObservableRepository) UpdateStatuses(ctx context.Context, updates []ports.StatusUpdate) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.UpdateStatuses")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int("batch.size", len(updates)),
		attribute.String("operation", "update_statuses"),
	)

	start := time.Now()
	applied, err := r.repo.UpdateStatuses(ctx, updates)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "update_order_statuses", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return 0, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int64("batch.applied", applied))
	telemetry.SetSpanSuccess(span)
	return applied, nil
}
