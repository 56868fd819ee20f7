package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sabordecasa/pedidos/internal/orders/ports"
)

// UpdateStatusesCommand carries an ordered batch of status changes.
type UpdateStatusesCommand struct {
	Updates []ports.StatusUpdate
}

type UpdateStatusesCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
	logger *slog.Logger
}

func NewUpdateStatusesCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
	logger *slog.Logger,
) *UpdateStatusesCommandHandler {
	return &UpdateStatusesCommandHandler{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// Handle skips entries missing either field (logged, never failing the batch)
// and applies the remainder in one all-or-nothing repository call. It returns
// the number of orders actually changed.
func (h *UpdateStatusesCommandHandler) Handle(ctx context.Context, cmd UpdateStatusesCommand) (int64, error) {
	valid := make([]ports.StatusUpdate, 0, len(cmd.Updates))
	for _, update := range cmd.Updates {
		if strings.TrimSpace(update.OrderID) == "" || strings.TrimSpace(update.Status) == "" {
			h.logger.WarnContext(ctx, "skipping malformed status update",
				"order_id", update.OrderID,
				"status", update.Status,
			)
			continue
		}
		valid = append(valid, update)
	}

	if len(valid) == 0 {
		return 0, nil
	}

	applied, err := h.repo.UpdateStatuses(ctx, valid)
	if err != nil {
		return 0, err
	}

	for _, update := range valid {
		if err := h.events.PublishOrderStatusChanged(ctx, update.OrderID, update.Status); err != nil {
			h.logger.WarnContext(ctx, "failed to publish status change event",
				"order_id", update.OrderID,
				"error", err,
			)
		}
	}

	return applied, nil
}
