package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
)

// Handler exposes store and listing HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Post("/", h.createStore)
		r.Get("/{id}", h.getStore)
		r.Get("/supplier/{supplier_id}", h.listStores)
		r.Get("/{id}/listings", h.listListings)
	})
	r.Route("/api/v1/listings", func(r chi.Router) {
		r.Post("/", h.createListing)
		r.Get("/{id}", h.getListing)
		r.Patch("/{id}/status", h.setListingStatus)
	})
}

func (h *Handler) createStore(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	store, err := h.service.CreateStore(r.Context(), req)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, store)
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	store, err := h.service.GetStore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, store)
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context(), chi.URLParam(r, "supplier_id"))
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, stores)
}

func (h *Handler) createListing(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	l, err := h.service.CreateListing(r.Context(), req)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, l)
}

func (h *Handler) getListing(w http.ResponseWriter, r *http.Request) {
	l, err := h.service.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, l)
}

func (h *Handler) listListings(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	listings, err := h.service.ListListings(r.Context(), chi.URLParam(r, "id"), activeOnly)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, listings)
}

func (h *Handler) setListingStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	l, err := h.service.SetListingStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respond(w, apperr.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, l)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
