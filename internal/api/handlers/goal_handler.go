package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/models"
	"github.com/cumpas/cumpas-sync/internal/services"
)

// GoalHandler handles HTTP requests for goals.
type GoalHandler struct {
	service services.GoalServiceProvider
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(service services.GoalServiceProvider) *GoalHandler {
	return &GoalHandler{service: service}
}

func (h *GoalHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.ListGoals(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Goal")
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.GoalInput
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	goal, err := h.service.CreateGoal(r.Context(), auth.UserIDFromContext(r.Context()), payload)
	if err != nil {
		respondServiceError(w, r, err, "Goal")
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload models.GoalPatch
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	goal, err := h.service.UpdateGoal(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), payload)
	if err != nil {
		respondServiceError(w, r, err, "Goal")
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGoal(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err, "Goal")
		return
	}
	respondMessage(w, "Goal deleted")
}
