package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/v1/consumers/{consumer_id}/checkout", h.checkout)
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/direct", h.createDirect)
		r.Get("/{id}", h.getOrder)
		r.Get("/consumer/{consumer_id}", h.listConsumerOrders)
		r.Post("/{id}/accept", h.accept)
		r.Post("/{id}/reject", h.reject)
		r.Post("/{id}/cancel", h.cancel)
		r.Post("/complete", h.complete)
		r.Get("/queue/{store_id}", h.queue)
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	consumerID, err := uuid.Parse(chi.URLParam(r, "consumer_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid consumer_id"})
		return
	}
	var req CheckoutFromCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	orders, err := h.service.CreateFromCart(r.Context(), consumerID, req.PickupStart, req.PickupEnd)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, orders)
}

func (h *Handler) createDirect(w http.ResponseWriter, r *http.Request) {
	var req CreateDirectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.CreateDirect(r.Context(), req)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listConsumerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListConsumerOrders(r.Context(), chi.URLParam(r, "consumer_id"))
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Accept(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	var req ReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.Reject(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	var req ReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TokenHash string `json:"token_hash"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.CompleteViaPickupToken(r.Context(), req.TokenHash)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) queue(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.GetQueue(r.Context(), chi.URLParam(r, "store_id"), r.URL.Query().Get("status"))
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, summaries)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
