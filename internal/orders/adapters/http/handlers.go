package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sabordecasa/pedidos/internal/orders/app"
	"github.com/sabordecasa/pedidos/internal/orders/domain"
	"github.com/sabordecasa/pedidos/internal/orders/ports"
)

// Handler exposes HTTP endpoints for order operations.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the order handlers to the provided router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/pedidos", h.listOrders).Methods(http.MethodGet)
	r.HandleFunc("/api/pedidos", h.createOrder).Methods(http.MethodPost)
	r.HandleFunc("/api/pedidos", h.updateStatuses).Methods(http.MethodPut)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", nil)
		return
	}

	created, err := h.service.CreateOrder(r.Context(), order)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "invalid order payload",
				"errors":  verr.Messages,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save order", err)
		return
	}

	// A replayed order id lands here as well: the write is a silent no-op.
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "order received",
		"orderId": created.ID,
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list orders", err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) updateStatuses(w http.ResponseWriter, r *http.Request) {
	var updates []ports.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", nil)
		return
	}

	applied, err := h.service.UpdateStatuses(r.Context(), updates)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update statuses", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "statuses updated",
		"updated": applied,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, status, body)
}
