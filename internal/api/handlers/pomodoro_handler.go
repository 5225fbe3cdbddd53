package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/models"
	"github.com/cumpas/cumpas-sync/internal/services"
)

// PomodoroHandler handles HTTP requests for pomodoro sessions.
type PomodoroHandler struct {
	service services.PomodoroServiceProvider
}

// NewPomodoroHandler creates a new PomodoroHandler.
func NewPomodoroHandler(service services.PomodoroServiceProvider) *PomodoroHandler {
	return &PomodoroHandler{service: service}
}

func (h *PomodoroHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListSessions(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Session")
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

func (h *PomodoroHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.PomodoroInput
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	session, err := h.service.CreateSession(r.Context(), auth.UserIDFromContext(r.Context()), payload)
	if err != nil {
		respondServiceError(w, r, err, "Session")
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

func (h *PomodoroHandler) Complete(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.CompleteSession(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err, "Session")
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *PomodoroHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Session")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
