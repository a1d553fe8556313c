package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/feed"
)

// BrowseHandler exposes server-side browse sessions: a paginated listing
// that follows filter changes and supports load more.
type BrowseHandler struct {
	registry *feed.Registry
}

func NewBrowseHandler(registry *feed.Registry) *BrowseHandler {
	return &BrowseHandler{registry: registry}
}

type browseResponse struct {
	ID    string     `json:"id"`
	State feed.State `json:"state"`
}

type loadMoreResponse struct {
	Started bool       `json:"started"`
	State   feed.State `json:"state"`
}

func (h *BrowseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var filter domain.Filter
	if err := decodeJSON(r, &filter); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	id, f := h.registry.Create(filter)
	respondJSON(w, http.StatusCreated, browseResponse{ID: id, State: f.Snapshot()})
}

func (h *BrowseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	f, err := h.registry.Get(id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, browseResponse{ID: id, State: f.Snapshot()})
}

func (h *BrowseHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var filter domain.Filter
	if err := decodeJSON(r, &filter); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	f, err := h.registry.Get(id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	f.SetFilter(filter)
	respondJSON(w, http.StatusOK, browseResponse{ID: id, State: f.Snapshot()})
}

func (h *BrowseHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	f, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	started := f.LoadMore()
	respondJSON(w, http.StatusOK, loadMoreResponse{Started: started, State: f.Snapshot()})
}

func (h *BrowseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Delete(chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
