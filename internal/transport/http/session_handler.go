package http

import (
	"net/http"

	"github.com/light-bringer/storefront-service/internal/app/catalog/feed"
)

// DedupResetter drops pending request registrations.
type DedupResetter interface {
	ResetDedup()
}

// SessionHandler ends a shopper session: pending deduplicated requests are
// forgotten and the listed browse sessions are closed.
type SessionHandler struct {
	dedup    DedupResetter
	registry *feed.Registry
}

func NewSessionHandler(dedup DedupResetter, registry *feed.Registry) *SessionHandler {
	return &SessionHandler{
		dedup:    dedup,
		registry: registry,
	}
}

type endSessionRequestDTO struct {
	BrowseIDs []string `json:"browseIds"`
}

type endSessionResponse struct {
	ClosedBrowseSessions int `json:"closedBrowseSessions"`
}

func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	var req endSessionRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	h.dedup.ResetDedup()

	closed := 0
	for _, id := range req.BrowseIDs {
		if err := h.registry.Delete(id); err == nil {
			closed++
		}
	}
	respondJSON(w, http.StatusOK, endSessionResponse{ClosedBrowseSessions: closed})
}
