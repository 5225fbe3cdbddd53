package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cumpas/cumpas-sync/internal/models"
)

// FinanceServiceProvider defines the interface for finance services.
type FinanceServiceProvider interface {
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, in models.TransactionInput) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id string, patch models.TransactionPatch) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
	GetSummary(ctx context.Context, userID string) (models.FinanceSummary, error)
}

// FinanceService provides business logic for income and expense tracking.
type FinanceService struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(db *sqlx.DB) *FinanceService {
	return &FinanceService{db: db, now: time.Now}
}

const transactionColumns = "id, user_id, type, amount, category, description, date, created_at"

// ListTransactions returns a user's transactions, most recent date first.
func (s *FinanceService) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	err := s.db.SelectContext(ctx, &txs, s.db.Rebind(
		"SELECT "+transactionColumns+" FROM finance_transactions WHERE user_id = ? ORDER BY date DESC, created_at DESC"), userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *FinanceService) getTransaction(ctx context.Context, userID, id string) (models.Transaction, error) {
	var tx models.Transaction
	err := getOwned(ctx, s.db, &tx, "SELECT "+transactionColumns+" FROM finance_transactions WHERE id = ? AND user_id = ?", id, userID)
	return tx, err
}

// CreateTransaction stores a new transaction for userID.
func (s *FinanceService) CreateTransaction(ctx context.Context, userID string, in models.TransactionInput) (models.Transaction, error) {
	now := s.now().UTC()
	tx := models.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date.UTC(),
		CreatedAt:   now,
	}
	if in.Date.IsZero() {
		tx.Date = now
	}

	_, err := s.db.NamedExecContext(ctx, `INSERT INTO finance_transactions (id, user_id, type, amount, category, description, date, created_at)
		VALUES (:id, :user_id, :type, :amount, :category, :description, :date, :created_at)`, tx)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return tx, nil
}

// UpdateTransaction applies the supplied fields of patch.
func (s *FinanceService) UpdateTransaction(ctx context.Context, userID, id string, patch models.TransactionPatch) (models.Transaction, error) {
	b := &updateBuilder{}
	setIf(b, "type", patch.Type)
	setIf(b, "amount", patch.Amount)
	setIf(b, "category", patch.Category)
	setIf(b, "description", patch.Description)
	if patch.Date != nil {
		b.set("date", patch.Date.UTC())
	}

	if err := updateOwned(ctx, s.db, "finance_transactions", id, userID, b); err != nil {
		return models.Transaction{}, err
	}
	return s.getTransaction(ctx, userID, id)
}

// DeleteTransaction removes a transaction owned by userID.
func (s *FinanceService) DeleteTransaction(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, s.db, "finance_transactions", id, userID)
}

// GetSummary totals a user's income and expenses.
func (s *FinanceService) GetSummary(ctx context.Context, userID string) (models.FinanceSummary, error) {
	var rows []struct {
		Type     string  `db:"type"`
		Category string  `db:"category"`
		Total    float64 `db:"total"`
	}
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(
		"SELECT type, category, COALESCE(SUM(amount), 0) AS total FROM finance_transactions WHERE user_id = ? GROUP BY type, category"), userID)
	if err != nil {
		return models.FinanceSummary{}, fmt.Errorf("summarize transactions: %w", err)
	}

	summary := models.FinanceSummary{ExpenseByCategory: map[string]float64{}}
	for _, r := range rows {
		switch r.Type {
		case models.TransactionIncome:
			summary.TotalIncome += r.Total
		case models.TransactionExpense:
			summary.TotalExpense += r.Total
			summary.ExpenseByCategory[r.Category] += r.Total
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}
