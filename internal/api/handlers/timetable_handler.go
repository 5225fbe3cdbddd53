package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/models"
	"github.com/cumpas/cumpas-sync/internal/services"
)

// TimetableHandler handles HTTP requests for classes and attendance.
type TimetableHandler struct {
	service services.TimetableServiceProvider
}

// NewTimetableHandler creates a new TimetableHandler.
func NewTimetableHandler(service services.TimetableServiceProvider) *TimetableHandler {
	return &TimetableHandler{service: service}
}

func (h *TimetableHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ListClasses(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Class")
		return
	}
	respondJSON(w, http.StatusOK, classes)
}

func (h *TimetableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.ClassInput
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	class, err := h.service.CreateClass(r.Context(), auth.UserIDFromContext(r.Context()), payload)
	if err != nil {
		respondServiceError(w, r, err, "Class")
		return
	}
	respondJSON(w, http.StatusCreated, class)
}

func (h *TimetableHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload models.ClassPatch
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	class, err := h.service.UpdateClass(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), payload)
	if err != nil {
		respondServiceError(w, r, err, "Class")
		return
	}
	respondJSON(w, http.StatusOK, class)
}

func (h *TimetableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteClass(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err, "Class")
		return
	}
	respondMessage(w, "Class deleted")
}

// GetAttendance lists the attendance history of one class.
func (h *TimetableHandler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListAttendance(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err, "Class")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// MarkAttendance records attendance for a class.
func (h *TimetableHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var payload models.AttendanceInput
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	record, err := h.service.MarkAttendance(r.Context(), auth.UserIDFromContext(r.Context()), payload)
	if err != nil {
		respondServiceError(w, r, err, "Class")
		return
	}
	respondJSON(w, http.StatusCreated, record)
}
