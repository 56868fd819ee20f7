package ports

import (
	"context"

	"github.com/sabordecasa/pedidos/internal/orders/domain"
)

// OrderRepository exposes persistence operations required by the application layer.
type OrderRepository interface {
	// Create persists the whole order tree atomically. A duplicate order ID is
	// a silent no-op: no error, no overwrite.
	Create(ctx context.Context, order domain.Order) error
	// List returns every order with nested items and complements, newest
	// submission first.
	List(ctx context.Context) ([]domain.Order, error)
	// UpdateStatuses applies every update in one transaction and reports how
	// many rows changed. Unknown order IDs change zero rows without error.
	UpdateStatuses(ctx context.Context, updates []StatusUpdate) (int64, error)
}

// StatusUpdate is one entry of a batch status change.
type StatusUpdate struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}
