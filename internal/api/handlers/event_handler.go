package handlers

import (
	"net/http"
	"strconv"

	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/services"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// EventHandler serves the activity feed.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent handles the request to get recent activity of the current user.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	events, err := h.service.GetRecentEvents(r.Context(), auth.UserIDFromContext(r.Context()), limit)
	if err != nil {
		respondServiceError(w, r, err, "Event")
		return
	}
	respondJSON(w, http.StatusOK, events)
}
