package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cumpas/cumpas-sync/internal/models"
)

// PomodoroServiceProvider defines the interface for pomodoro services.
type PomodoroServiceProvider interface {
	ListSessions(ctx context.Context, userID string) ([]models.PomodoroSession, error)
	CreateSession(ctx context.Context, userID string, in models.PomodoroInput) (models.PomodoroSession, error)
	CompleteSession(ctx context.Context, userID, id string) (models.PomodoroSession, error)
	GetStats(ctx context.Context, userID string) (models.PomodoroStats, error)
}

// PomodoroService provides business logic for focus sessions.
type PomodoroService struct {
	db     *sqlx.DB
	events EventRecorder
	now    func() time.Time
}

// NewPomodoroService creates a new PomodoroService.
func NewPomodoroService(db *sqlx.DB, events EventRecorder) *PomodoroService {
	return &PomodoroService{db: db, events: events, now: time.Now}
}

const pomodoroColumns = "id, user_id, type, duration, completed, started_at, ended_at, created_at"

func (s *PomodoroService) ListSessions(ctx context.Context, userID string) ([]models.PomodoroSession, error) {
	sessions := []models.PomodoroSession{}
	err := s.db.SelectContext(ctx, &sessions, s.db.Rebind(
		"SELECT "+pomodoroColumns+" FROM pomodoro_sessions WHERE user_id = ? ORDER BY started_at DESC"), userID)
	if err != nil {
		return nil, fmt.Errorf("list pomodoro sessions: %w", err)
	}
	return sessions, nil
}

// CreateSession starts a new session; it is not completed until
// CompleteSession is called.
func (s *PomodoroService) CreateSession(ctx context.Context, userID string, in models.PomodoroInput) (models.PomodoroSession, error) {
	now := s.now().UTC()
	session := models.PomodoroSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      in.Type,
		Duration:  in.Duration,
		StartedAt: in.StartedAt.UTC(),
		CreatedAt: now,
	}
	if session.Type == "" {
		session.Type = models.PomodoroWork
	}
	if in.StartedAt.IsZero() {
		session.StartedAt = now
	}

	_, err := s.db.NamedExecContext(ctx, `INSERT INTO pomodoro_sessions (id, user_id, type, duration, completed, started_at, ended_at, created_at)
		VALUES (:id, :user_id, :type, :duration, :completed, :started_at, :ended_at, :created_at)`, session)
	if err != nil {
		return models.PomodoroSession{}, fmt.Errorf("insert pomodoro session: %w", err)
	}
	return session, nil
}

// CompleteSession marks a session completed and stamps its end time.
// Completing twice keeps it completed and refreshes endedAt.
func (s *PomodoroService) CompleteSession(ctx context.Context, userID, id string) (models.PomodoroSession, error) {
	var before models.PomodoroSession
	if err := getOwned(ctx, s.db, &before, "SELECT "+pomodoroColumns+" FROM pomodoro_sessions WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return models.PomodoroSession{}, err
	}

	now := s.now().UTC()
	b := &updateBuilder{}
	b.set("completed", true)
	b.set("ended_at", now)
	if err := updateOwned(ctx, s.db, "pomodoro_sessions", id, userID, b); err != nil {
		return models.PomodoroSession{}, err
	}

	session := before
	session.Completed = true
	session.EndedAt = &now

	if !before.Completed && s.events != nil {
		s.events.Record(ctx, userID, EventPomodoroCompleted, fmt.Sprintf("Finished a %d minute %s session", session.Duration, session.Type))
	}
	return session, nil
}

// GetStats aggregates the user's completed sessions.
func (s *PomodoroService) GetStats(ctx context.Context, userID string) (models.PomodoroStats, error) {
	var rows []struct {
		Type     string `db:"type"`
		Sessions int    `db:"sessions"`
		Minutes  int    `db:"minutes"`
	}
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(
		"SELECT type, COUNT(*) AS sessions, COALESCE(SUM(duration), 0) AS minutes FROM pomodoro_sessions WHERE user_id = ? AND completed = TRUE GROUP BY type"),
		userID)
	if err != nil {
		return models.PomodoroStats{}, fmt.Errorf("pomodoro stats: %w", err)
	}

	var stats models.PomodoroStats
	for _, r := range rows {
		stats.TotalSessions += r.Sessions
		stats.TotalMinutes += r.Minutes
		switch r.Type {
		case models.PomodoroWork:
			stats.WorkSessions += r.Sessions
			stats.WorkMinutes += r.Minutes
		case models.PomodoroShortBreak, models.PomodoroLongBreak:
			stats.BreakSessions += r.Sessions
			stats.BreakMinutes += r.Minutes
		}
	}
	return stats, nil
}
