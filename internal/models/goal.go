package models

import "time"

// Goal is a longer-term objective with a progress percentage.
type Goal struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"userId" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	TargetDate  *time.Time `json:"targetDate" db:"target_date"`
	Progress    int        `json:"progress" db:"progress"`
	Completed   bool       `json:"completed" db:"completed"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

type GoalInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Category    string     `json:"category" validate:"max=100"`
	TargetDate  *Timestamp `json:"targetDate"`
	Progress    int        `json:"progress" validate:"min=0,max=100"`
}

// GoalPatch is a partial goal update; a null targetDate clears it.
type GoalPatch struct {
	Title       *string       `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string       `json:"description"`
	Category    *string       `json:"category" validate:"omitempty,max=100"`
	TargetDate  NullTimestamp `json:"targetDate"`
	Progress    *int          `json:"progress" validate:"omitempty,min=0,max=100"`
	Completed   *bool         `json:"completed"`
}
