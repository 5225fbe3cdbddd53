package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumpas/cumpas-sync/internal/models"
)

func TestFinanceService_CRUDAndSummary(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com")
	b := createTestUser(t, db, "b@x.com")
	svc := NewFinanceService(db)
	ctx := context.Background()

	salary, err := svc.CreateTransaction(ctx, a.ID, models.TransactionInput{Type: "income", Amount: 1000, Category: "job"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, salary.UserID)
	assert.False(t, salary.Date.IsZero())

	_, err = svc.CreateTransaction(ctx, a.ID, models.TransactionInput{Type: "expense", Amount: 120.5, Category: "food",
		Date: models.Timestamp{Time: at("2026-10-01T12:00:00Z")}})
	require.NoError(t, err)
	books, err := svc.CreateTransaction(ctx, a.ID, models.TransactionInput{Type: "expense", Amount: 80, Category: "books"})
	require.NoError(t, err)
	_, err = svc.CreateTransaction(ctx, b.ID, models.TransactionInput{Type: "expense", Amount: 999, Category: "food"})
	require.NoError(t, err)

	list, err := svc.ListTransactions(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	summary, err := svc.GetSummary(ctx, a.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1000, summary.TotalIncome, 0.001)
	assert.InDelta(t, 200.5, summary.TotalExpense, 0.001)
	assert.InDelta(t, 799.5, summary.Balance, 0.001)
	assert.InDelta(t, 120.5, summary.ExpenseByCategory["food"], 0.001)
	assert.InDelta(t, 80, summary.ExpenseByCategory["books"], 0.001)

	updated, err := svc.UpdateTransaction(ctx, a.ID, books.ID, models.TransactionPatch{Amount: ptr(60.0)})
	require.NoError(t, err)
	assert.InDelta(t, 60, updated.Amount, 0.001)
	assert.Equal(t, "books", updated.Category)

	_, err = svc.UpdateTransaction(ctx, b.ID, books.ID, models.TransactionPatch{Amount: ptr(1.0)})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteTransaction(ctx, b.ID, books.ID), ErrNotFound)
	require.NoError(t, svc.DeleteTransaction(ctx, a.ID, books.ID))
}

func TestFinanceService_EmptySummary(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com")

	summary, err := NewFinanceService(db).GetSummary(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Balance)
	assert.NotNil(t, summary.ExpenseByCategory)
	assert.Empty(t, summary.ExpenseByCategory)
}

func TestFinanceService_DeleteDriverError(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	db := sqlx.NewDb(raw, "sqlite3")

	mock.ExpectExec("DELETE FROM finance_transactions").WithArgs("t1", "u1").WillReturnError(errors.New("database is locked"))

	err = NewFinanceService(db).DeleteTransaction(context.Background(), "u1", "t1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceService_DeleteZeroRowsIsNotFound(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	db := sqlx.NewDb(raw, "sqlite3")

	mock.ExpectExec("DELETE FROM finance_transactions").WithArgs("t1", "u1").WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewFinanceService(db).DeleteTransaction(context.Background(), "u1", "t1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
