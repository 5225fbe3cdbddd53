package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/models"
	"github.com/cumpas/cumpas-sync/internal/services"
)

// StudyHandler handles HTTP requests for study notes and tasks.
type StudyHandler struct {
	service services.StudyServiceProvider
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(service services.StudyServiceProvider) *StudyHandler {
	return &StudyHandler{service: service}
}

func (h *StudyHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.ListNotes(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Note")
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

func (h *StudyHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var payload models.StudyNoteInput
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	note, err := h.service.CreateNote(r.Context(), auth.UserIDFromContext(r.Context()), payload)
	if err != nil {
		respondServiceError(w, r, err, "Note")
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (h *StudyHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var payload models.StudyNotePatch
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	note, err := h.service.UpdateNote(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), payload)
	if err != nil {
		respondServiceError(w, r, err, "Note")
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (h *StudyHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteNote(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err, "Note")
		return
	}
	respondMessage(w, "Note deleted")
}

func (h *StudyHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.ListTasks(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Task")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *StudyHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var payload models.StudyTaskInput
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	task, err := h.service.CreateTask(r.Context(), auth.UserIDFromContext(r.Context()), payload)
	if err != nil {
		respondServiceError(w, r, err, "Task")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (h *StudyHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var payload models.StudyTaskPatch
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	task, err := h.service.UpdateTask(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), payload)
	if err != nil {
		respondServiceError(w, r, err, "Task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *StudyHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTask(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err, "Task")
		return
	}
	respondMessage(w, "Task deleted")
}
