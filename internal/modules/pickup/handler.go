package pickup

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
	"github.com/rescuebite/rescuebite-backend/internal/modules/order"
)

// Redeemer is the slice of the order lifecycle the counter needs.
type Redeemer interface {
	CompleteViaPickupToken(ctx context.Context, tokenHash string) (*order.Order, error)
}

// Handler exposes the counter-side scan endpoint: an uploaded/scanned QR
// image is decoded and its token redeemed against the order lifecycle.
type Handler struct {
	redeemer Redeemer
	codec    QRCodec
}

func NewHandler(redeemer Redeemer, codec QRCodec) *Handler {
	return &Handler{redeemer: redeemer, codec: codec}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/v1/pickup/scan", h.scan)
	r.Get("/api/v1/pickup/qr/{token_hash}", h.encode)
}

func (h *Handler) scan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImagePath string `json:"image_path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	tokenHash, err := h.codec.Decode(req.ImagePath)
	if err != nil || tokenHash == "" {
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": "could not decode QR image"})
		return
	}

	o, err := h.redeemer.CompleteViaPickupToken(r.Context(), tokenHash)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) encode(w http.ResponseWriter, r *http.Request) {
	path, err := h.codec.Encode(chi.URLParam(r, "token_hash"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"image_path": path})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
