package models

import "time"

// Transaction types.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is a single income or expense entry.
type Transaction struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	Type        string    `json:"type" db:"type"`
	Amount      float64   `json:"amount" db:"amount"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// TransactionInput is the payload for creating a transaction. A zero Date
// means "now"; a bare YYYY-MM-DD is accepted.
type TransactionInput struct {
	Type        string    `json:"type" validate:"required,oneof=income expense"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Category    string    `json:"category" validate:"max=100"`
	Description string    `json:"description"`
	Date        Timestamp `json:"date"`
}

// TransactionPatch is a partial transaction update.
type TransactionPatch struct {
	Type        *string    `json:"type" validate:"omitempty,oneof=income expense"`
	Amount      *float64   `json:"amount" validate:"omitempty,gt=0"`
	Category    *string    `json:"category" validate:"omitempty,max=100"`
	Description *string    `json:"description"`
	Date        *Timestamp `json:"date"`
}

// FinanceSummary aggregates a user's transactions.
type FinanceSummary struct {
	TotalIncome       float64            `json:"totalIncome"`
	TotalExpense      float64            `json:"totalExpense"`
	Balance           float64            `json:"balance"`
	ExpenseByCategory map[string]float64 `json:"expenseByCategory"`
}
