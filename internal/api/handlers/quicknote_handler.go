package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/models"
	"github.com/cumpas/cumpas-sync/internal/services"
)

// QuickNoteHandler handles HTTP requests for quick notes.
type QuickNoteHandler struct {
	service services.QuickNoteServiceProvider
}

// NewQuickNoteHandler creates a new QuickNoteHandler.
func NewQuickNoteHandler(service services.QuickNoteServiceProvider) *QuickNoteHandler {
	return &QuickNoteHandler{service: service}
}

// GetAll lists active notes, or archived ones with ?archived=true.
func (h *QuickNoteHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	archived := false
	if raw := r.URL.Query().Get("archived"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "archived must be true or false")
			return
		}
		archived = v
	}

	notes, err := h.service.ListQuickNotes(r.Context(), auth.UserIDFromContext(r.Context()), archived)
	if err != nil {
		respondServiceError(w, r, err, "Note")
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

func (h *QuickNoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.QuickNoteInput
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	note, err := h.service.CreateQuickNote(r.Context(), auth.UserIDFromContext(r.Context()), payload)
	if err != nil {
		respondServiceError(w, r, err, "Note")
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (h *QuickNoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload models.QuickNotePatch
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	note, err := h.service.UpdateQuickNote(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), payload)
	if err != nil {
		respondServiceError(w, r, err, "Note")
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (h *QuickNoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteQuickNote(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err, "Note")
		return
	}
	respondMessage(w, "Note deleted")
}
