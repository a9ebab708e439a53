package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
)

// Handler exposes cart HTTP endpoints. The consumer id is an explicit path
// parameter; identity checks against the bearer token happen here, never in
// the service.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/consumers/{consumer_id}/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Post("/items", h.addItem)
		r.Patch("/items/{listing_id}", h.updateQuantity)
		r.Delete("/items/{listing_id}", h.removeItem)
		r.Delete("/", h.clear)
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	consumerID, err := uuid.Parse(chi.URLParam(r, "consumer_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid consumer_id"})
		return
	}
	view, err := h.service.GetOrCreate(r.Context(), consumerID)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	consumerID, err := uuid.Parse(chi.URLParam(r, "consumer_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid consumer_id"})
		return
	}
	var req struct {
		ListingID string `json:"listing_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid listing_id"})
		return
	}
	view, err := h.service.AddItem(r.Context(), consumerID, listingID, req.Quantity)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	consumerID, err := uuid.Parse(chi.URLParam(r, "consumer_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid consumer_id"})
		return
	}
	listingID, err := uuid.Parse(chi.URLParam(r, "listing_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid listing_id"})
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	view, err := h.service.UpdateQuantity(r.Context(), consumerID, listingID, req.Quantity)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	consumerID, err := uuid.Parse(chi.URLParam(r, "consumer_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid consumer_id"})
		return
	}
	listingID, err := uuid.Parse(chi.URLParam(r, "listing_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid listing_id"})
		return
	}
	view, err := h.service.RemoveItem(r.Context(), consumerID, listingID)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	consumerID, err := uuid.Parse(chi.URLParam(r, "consumer_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid consumer_id"})
		return
	}
	view, err := h.service.Clear(r.Context(), consumerID)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
