package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/models"
	"github.com/cumpas/cumpas-sync/internal/services"
)

// HabitHandler handles HTTP requests for habits.
type HabitHandler struct {
	service services.HabitServiceProvider
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(service services.HabitServiceProvider) *HabitHandler {
	return &HabitHandler{service: service}
}

// GetAll handles listing the current user's habits.
func (h *HabitHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	habits, err := h.service.ListHabits(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Habit")
		return
	}
	respondJSON(w, http.StatusOK, habits)
}

// Create handles creating a habit.
func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.HabitInput
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	habit, err := h.service.CreateHabit(r.Context(), auth.UserIDFromContext(r.Context()), payload)
	if err != nil {
		respondServiceError(w, r, err, "Habit")
		return
	}
	respondJSON(w, http.StatusCreated, habit)
}

// Update handles a partial habit update.
func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload models.HabitPatch
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	habit, err := h.service.UpdateHabit(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), payload)
	if err != nil {
		respondServiceError(w, r, err, "Habit")
		return
	}
	respondJSON(w, http.StatusOK, habit)
}

// Delete handles deleting a habit.
func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHabit(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err, "Habit")
		return
	}
	respondMessage(w, "Habit deleted")
}

// Complete marks a habit done for today.
func (h *HabitHandler) Complete(w http.ResponseWriter, r *http.Request) {
	habit, err := h.service.CompleteHabit(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err, "Habit")
		return
	}
	respondJSON(w, http.StatusOK, habit)
}
