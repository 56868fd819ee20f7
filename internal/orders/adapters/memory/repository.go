package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sabordecasa/pedidos/internal/orders/domain"
	"github.com/sabordecasa/pedidos/internal/orders/ports"
)

// Repository provides an in-memory store useful for local development and tests.
// It mirrors the relational adapter's semantics: duplicate IDs are ignored and
// status updates for unknown IDs change nothing.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	seq    []string
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{orders: make(map[string]domain.Order)}
}

// Create stores the order unless its ID was already seen.
func (r *Repository) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return nil
	}

	r.orders[order.ID] = order
	r.seq = append(r.seq, order.ID)
	return nil
}

// List returns orders newest submission first.
func (r *Repository) List(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.seq))
	for _, id := range r.seq {
		result = append(result, r.orders[id])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SentAt.After(result[j].SentAt)
	})

	return result, nil
}

// UpdateStatuses applies every update and counts the ones that matched an order.
func (r *Repository) UpdateStatuses(_ context.Context, updates []ports.StatusUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var applied int64
	for _, update := range updates {
		order, ok := r.orders[update.OrderID]
		if !ok {
			continue
		}
		order.Status = update.Status
		r.orders[update.OrderID] = order
		applied++
	}

	return applied, nil
}
