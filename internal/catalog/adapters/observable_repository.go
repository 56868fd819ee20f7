package adapters

import (
	"context"
	"time"

	"github.com/sabordecasa/pedidos/internal/catalog/domain"
	"github.com/sabordecasa/pedidos/internal/catalog/ports"
	"github.com/sabordecasa/pedidos/internal/database"
	"github.com/sabordecasa/pedidos/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableRepository struct {
	repo    ports.CatalogRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.CatalogRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "CatalogRepository.ListProducts")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "list_products"),
	)

	start := time.Now()
	products, err := r.repo.ListProducts(ctx)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "list_products", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(products)))
	telemetry.SetSpanSuccess(span)
	return products, nil
}

func (r *ObservableRepository) ReplaceProducts(ctx context.Context, products []domain.Product) error {
	ctx, span := telemetry.StartSpan(ctx, "CatalogRepository.ReplaceProducts")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.Int("batch.size", len(products)),
		attribute.String("operation", "replace_products"),
	)

	start := time.Now()
	err := r.repo.ReplaceProducts(ctx, products)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "replace_products", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) ListComplements(ctx context.Context) ([]domain.Complement, error) {
	ctx, span := telemetry.StartSpan(ctx, "CatalogRepository.ListComplements")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "list_complements"),
	)

	start := time.Now()
	complements, err := r.repo.ListComplements(ctx)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "list_complements", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(complements)))
	telemetry.SetSpanSuccess(span)
	return complements, nil
}
