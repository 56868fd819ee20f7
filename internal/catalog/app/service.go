package app

import (
	"context"
	"log/slog"

	"github.com/sabordecasa/pedidos/internal/catalog/domain"
	"github.com/sabordecasa/pedidos/internal/catalog/ports"
)

// Service exposes the catalog read and bulk-replace operations.
type Service struct {
	repo   ports.CatalogRepository
	logger *slog.Logger
}

func NewService(repo ports.CatalogRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns the catalog grouped by category in first-seen order.
func (s *Service) ListProducts(ctx context.Context) (*domain.GroupedProducts, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GroupByCategory(products), nil
}

// ReplaceProducts swaps the whole product catalog for the given set.
func (s *Service) ReplaceProducts(ctx context.Context, products []domain.Product) error {
	if err := s.repo.ReplaceProducts(ctx, products); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "product catalog replaced", "count", len(products))
	return nil
}

// ListComplements returns all add-ons keyed by id.
func (s *Service) ListComplements(ctx context.Context) (map[int64]domain.Complement, error) {
	complements, err := s.repo.ListComplements(ctx)
	if err != nil {
		return nil, err
	}
	return domain.MapComplementsByID(complements), nil
}
