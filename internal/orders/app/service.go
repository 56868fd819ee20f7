package app

import (
	"context"
	"log/slog"

	"github.com/sabordecasa/pedidos/internal/orders/app/commands"
	"github.com/sabordecasa/pedidos/internal/orders/app/queries"
	"github.com/sabordecasa/pedidos/internal/orders/domain"
	"github.com/sabordecasa/pedidos/internal/orders/metrics"
	"github.com/sabordecasa/pedidos/internal/orders/ports"
)

// Service bundles use cases for handling orders via the API.
type Service struct {
	createOrderHandler    commands.CommandHandler
	updateStatusesHandler *commands.UpdateStatusesCommandHandler
	listOrdersHandler     *queries.ListOrdersQueryHandler
	metrics               *metrics.Metrics
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	events ports.EventBus,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	coreHandler := commands.NewCreateOrderCommandHandler(repo, events)
	observableHandler := commands.NewObservableCommandHandler(coreHandler, logger, metrics)

	return &Service{
		createOrderHandler:    observableHandler,
		updateStatusesHandler: commands.NewUpdateStatusesCommandHandler(repo, events, logger),
		listOrdersHandler:     queries.NewListOrdersQueryHandler(repo),
		metrics:               metrics,
	}
}

// CreateOrder orchestrates order persistence and event emission.
func (s *Service) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	return s.createOrderHandler.Handle(ctx, commands.CreateOrderCommand{Order: order})
}

// ListOrders returns every order, newest submission first.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.listOrdersHandler.Handle(ctx)
}

// UpdateStatuses applies a batch of status changes and reports the applied count.
func (s *Service) UpdateStatuses(ctx context.Context, updates []ports.StatusUpdate) (int64, error) {
	applied, err := s.updateStatusesHandler.Handle(ctx, commands.UpdateStatusesCommand{Updates: updates})
	if err != nil {
		return 0, err
	}

	s.metrics.RecordStatusUpdates(ctx, applied)
	return applied, nil
}
