package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/models"
	"github.com/cumpas/cumpas-sync/internal/services"
)

// FinanceHandler handles HTTP requests for finance transactions.
type FinanceHandler struct {
	service services.FinanceServiceProvider
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(service services.FinanceServiceProvider) *FinanceHandler {
	return &FinanceHandler{service: service}
}

func (h *FinanceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.ListTransactions(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Transaction")
		return
	}
	respondJSON(w, http.StatusOK, txs)
}

func (h *FinanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.TransactionInput
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	tx, err := h.service.CreateTransaction(r.Context(), auth.UserIDFromContext(r.Context()), payload)
	if err != nil {
		respondServiceError(w, r, err, "Transaction")
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}

func (h *FinanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload models.TransactionPatch
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	tx, err := h.service.UpdateTransaction(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), payload)
	if err != nil {
		respondServiceError(w, r, err, "Transaction")
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

func (h *FinanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTransaction(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err, "Transaction")
		return
	}
	respondMessage(w, "Transaction deleted")
}

// Summary returns income and expense totals.
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "Transaction")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
