package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sabordecasa/pedidos/internal/payments/ports"
)

// Handler exposes payment creation endpoints and the provider webhook.
type Handler struct {
	gateway   ports.Gateway
	publisher ports.NotificationPublisher
	logger    *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(gateway ports.Gateway, publisher ports.NotificationPublisher, logger *slog.Logger) *Handler {
	return &Handler{
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

// Register binds the payment handlers to the provided router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/pagamentos/pix", h.createPix).Methods(http.MethodPost)
	r.HandleFunc("/api/pagamentos/cartao", h.createCard).Methods(http.MethodPost)
	r.HandleFunc("/api/pagamentos/preferencia", h.createPreference).Methods(http.MethodPost)
	r.HandleFunc("/api/webhooks/pagamentos", h.receiveNotification).Methods(http.MethodPost)
}

func (h *Handler) createPix(w http.ResponseWriter, r *http.Request) {
	var req ports.PixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", nil)
		return
	}

	if msgs := validatePaymentBase(req.OrderID, req.Amount.IsPositive()); len(msgs) > 0 {
		writeValidationErrors(w, msgs)
		return
	}

	payment, err := h.gateway.CreatePixPayment(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create pix payment", err)
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

func (h *Handler) createCard(w http.ResponseWriter, r *http.Request) {
	var req ports.CardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", nil)
		return
	}

	msgs := validatePaymentBase(req.OrderID, req.Amount.IsPositive())
	if req.Token == "" {
		msgs = append(msgs, "token is required")
	}
	if len(msgs) > 0 {
		writeValidationErrors(w, msgs)
		return
	}

	payment, err := h.gateway.CreateCardPayment(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create card payment", err)
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

func (h *Handler) createPreference(w http.ResponseWriter, r *http.Request) {
	var req ports.PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", nil)
		return
	}

	if msgs := validatePaymentBase(req.OrderID, req.Amount.IsPositive()); len(msgs) > 0 {
		writeValidationErrors(w, msgs)
		return
	}

	preference, err := h.gateway.CreateCheckoutPreference(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create checkout preference", err)
		return
	}

	writeJSON(w, http.StatusCreated, preference)
}

// receiveNotification always answers 200: the provider retries on any other
// status, and a notification we cannot handle is not worth a retry storm.
// Status reconciliation happens downstream, off the published event.
func (h *Handler) receiveNotification(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type string `json:"type"`
		Data struct {
			ID any `json:"id"`
		} `json:"data"`
	}

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		h.logger.WarnContext(r.Context(), "unparseable payment notification", "error", err)
		writeJSON(w, http.StatusOK, map[string]any{"message": "notification received"})
		return
	}

	resourceID := ""
	if payload.Data.ID != nil {
		resourceID = fmt.Sprint(payload.Data.ID)
	}

	h.logger.InfoContext(r.Context(), "payment notification received",
		"type", payload.Type,
		"resource_id", resourceID,
	)

	if err := h.publisher.PublishPaymentNotification(r.Context(), payload.Type, resourceID); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to publish payment notification", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "notification received"})
}

func validatePaymentBase(orderID string, amountPositive bool) []string {
	var msgs []string
	if orderID == "" {
		msgs = append(msgs, "orderId is required")
	}
	if !amountPositive {
		msgs = append(msgs, "amount must be greater than zero")
	}
	return msgs
}

func writeValidationErrors(w http.ResponseWriter, msgs []string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": "invalid payment payload",
		"errors":  msgs,
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
