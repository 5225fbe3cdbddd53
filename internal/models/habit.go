package models

import "time"

// Habit is a recurring activity whose daily completion builds a streak.
type Habit struct {
	ID            string     `json:"id" db:"id"`
	UserID        string     `json:"userId" db:"user_id"`
	Name          string     `json:"name" db:"name"`
	Description   string     `json:"description" db:"description"`
	Frequency     string     `json:"frequency" db:"frequency"`
	Color         string     `json:"color" db:"color"`
	Completed     bool       `json:"completed" db:"completed"`
	Streak        int        `json:"streak" db:"streak"`
	LastCompleted *time.Time `json:"lastCompleted" db:"last_completed"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// HabitInput is the payload for creating a habit. Any userId in the body
// is ignored.
type HabitInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	Frequency   string `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	Color       string `json:"color"`
}

// HabitPatch carries the fields of a partial habit update; nil fields are
// left untouched and a null lastCompleted clears it.
type HabitPatch struct {
	Name          *string       `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string       `json:"description"`
	Frequency     *string       `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	Color         *string       `json:"color"`
	Completed     *bool         `json:"completed"`
	Streak        *int          `json:"streak" validate:"omitempty,min=0"`
	LastCompleted NullTimestamp `json:"lastCompleted"`
}
