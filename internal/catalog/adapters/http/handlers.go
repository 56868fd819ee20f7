package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sabordecasa/pedidos/internal/catalog/app"
	"github.com/sabordecasa/pedidos/internal/catalog/domain"
)

// Handler exposes HTTP endpoints for the product and add-on catalog.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the catalog handlers to the provided router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/produtos", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/produtos", h.replaceProducts).Methods(http.MethodPut)
	r.HandleFunc("/api/complementos", h.listComplements).Methods(http.MethodGet)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.service.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products", err)
		return
	}

	writeJSON(w, http.StatusOK, grouped)
}

func (h *Handler) replaceProducts(w http.ResponseWriter, r *http.Request) {
	var products []domain.Product
	if err := json.NewDecoder(r.Body).Decode(&products); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload", nil)
		return
	}

	if err := h.service.ReplaceProducts(r.Context(), products); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to replace products", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "products replaced",
	})
}

func (h *Handler) listComplements(w http.ResponseWriter, r *http.Request) {
	complements, err := h.service.ListComplements(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list complements", err)
		return
	}

	writeJSON(w, http.StatusOK, complements)
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
