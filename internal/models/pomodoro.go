package models

import "time"

// Pomodoro session types.
const (
	PomodoroWork       = "work"
	PomodoroShortBreak = "short_break"
	PomodoroLongBreak  = "long_break"
)

// PomodoroSession is one focus or break interval.
type PomodoroSession struct {
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"userId" db:"user_id"`
	Type      string     `json:"type" db:"type"`
	Duration  int        `json:"duration" db:"duration"` // minutes
	Completed bool       `json:"completed" db:"completed"`
	StartedAt time.Time  `json:"startedAt" db:"started_at"`
	EndedAt   *time.Time `json:"endedAt" db:"ended_at"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

type PomodoroInput struct {
	Type      string    `json:"type" validate:"omitempty,oneof=work short_break long_break"`
	Duration  int       `json:"duration" validate:"required,gt=0,lte=480"`
	StartedAt time.Time `json:"startedAt"`
}

// PomodoroStats aggregates completed sessions.
type PomodoroStats struct {
	TotalSessions int `json:"totalSessions"`
	TotalMinutes  int `json:"totalMinutes"`
	WorkSessions  int `json:"workSessions"`
	WorkMinutes   int `json:"workMinutes"`
	BreakSessions int `json:"breakSessions"`
	BreakMinutes  int `json:"breakMinutes"`
}
