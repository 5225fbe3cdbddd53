package models

import "time"

// Event is an entry in a user's activity feed.
type Event struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Type      string    `json:"type" db:"type"` // e.g. "habit.completed", "pomodoro.completed"
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
