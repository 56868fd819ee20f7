package ports

import (
	"context"

	"github.com/sabordecasa/pedidos/internal/catalog/domain"
)

// CatalogRepository reads the product and add-on catalog and supports the
// administrative wholesale product replacement.
type CatalogRepository interface {
	// ListProducts returns all products ordered by category, then name.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// ReplaceProducts swaps the entire product set in one transaction.
	ReplaceProducts(ctx context.Context, products []domain.Product) error

	// ListComplements returns all add-ons ordered by category, then name.
	ListComplements(ctx context.Context) ([]domain.Complement, error)
}
