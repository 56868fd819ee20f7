package queries

import (
	"context"

	"github.com/sabordecasa/pedidos/internal/orders/domain"
	"github.com/sabordecasa/pedidos/internal/orders/ports"
)

// ListOrdersQueryHandler returns every order with its nested items and
// complement selections, newest submission first.
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewListOrdersQueryHandler constructs a ListOrdersQueryHandler.
func NewListOrdersQueryHandler(repo ports.OrderRepository) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{repo: repo}
}

// Handle executes the query.
func (h *ListOrdersQueryHandler) Handle(ctx context.Context) ([]domain.Order, error) {
	return h.repo.List(ctx)
}
