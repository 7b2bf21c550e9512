package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/duarteurbanismo/sgci-recibos/internal/domain"
	"github.com/duarteurbanismo/sgci-recibos/internal/service"
)

// ReciboHandler handles receipt-related HTTP requests
type ReciboHandler struct {
	reciboService *service.ReciboService
}

// NewReciboHandler creates a new receipt handler
func NewReciboHandler(reciboService *service.ReciboService) *ReciboHandler {
	return &ReciboHandler{reciboService: reciboService}
}

// Emitir handles POST /api/recibos: validates the receipt fields and
// returns the fingerprint and QR payload without persisting anything
func (h *ReciboHandler) Emitir(w http.ResponseWriter, r *http.Request) {
	var req domain.ReciboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDecodeError(w)
		return
	}

	result, err := h.reciboService.Emitir(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Salvar handles PUT /api/recibos: persists the receipt, minting or
// carrying forward its share identifier
func (h *ReciboHandler) Salvar(w http.ResponseWriter, r *http.Request) {
	var req domain.ReciboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDecodeError(w)
		return
	}

	result, err := h.reciboService.Salvar(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Verificar handles GET /api/recibos/{numero}?hash=
func (h *ReciboHandler) Verificar(w http.ResponseWriter, r *http.Request) {
	numero := chi.URLParam(r, "numero")
	if numero == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	result, err := h.reciboService.Verificar(r.Context(), numero, r.URL.Query().Get("hash"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Compartilhado handles GET /api/recibos/share/{shareId}
func (h *ReciboHandler) Compartilhado(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "shareId")
	if shareID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	result, err := h.reciboService.Compartilhado(r.Context(), shareID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// respondServiceError maps service errors to the error taxonomy. Store and
// corrupt-data failures become a generic INTERNAL_ERROR; detail is only
// logged.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "VALIDATION_ERROR",
			"campos": verr.Campos,
		})
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND")
	default:
		log.Printf("recibo handler error: %v", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR")
	}
}

// respondDecodeError reports an unparseable request body in the same
// field-level shape as validation failures
func respondDecodeError(w http.ResponseWriter) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "VALIDATION_ERROR",
		"campos": []service.FieldError{{Campo: "body", Mensagem: "JSON inválido"}},
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code string) {
	respondJSON(w, status, map[string]string{"error": code})
}
