package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/cumpas/cumpas-sync/internal/models"
)

// Notifier pushes a message to every live connection of a user.
type Notifier interface {
	Publish(userID, action string, payload interface{})
}

// EventRecorder appends an entry to a user's activity feed.
type EventRecorder interface {
	Record(ctx context.Context, userID, eventType, message string)
}

// Event types recorded by the resource services.
const (
	EventHabitCompleted    = "habit.completed"
	EventGoalCompleted     = "goal.completed"
	EventTaskCompleted     = "task.completed"
	EventPomodoroCompleted = "pomodoro.completed"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	Record(ctx context.Context, userID, eventType, message string)
	GetRecentEvents(ctx context.Context, userID string, limit int) ([]models.Event, error)
}

// EventService stores a per-user activity feed and forwards each new
// event to the user's live clients.
type EventService struct {
	db       *sqlx.DB
	notifier Notifier
}

// NewEventService creates a new EventService. notifier may be nil.
func NewEventService(db *sqlx.DB, notifier Notifier) *EventService {
	return &EventService{db: db, notifier: notifier}
}

// Record logs a new event. Failures are logged and otherwise ignored so
// that the activity feed never fails the operation that produced it.
func (s *EventService) Record(ctx context.Context, userID, eventType, message string) {
	event := models.Event{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      eventType,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind("INSERT INTO events (id, user_id, type, message, created_at) VALUES (?, ?, ?, ?, ?)"),
		event.ID, event.UserID, event.Type, event.Message, event.CreatedAt)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("type", eventType).Msg("Failed to record event")
		return
	}

	if s.notifier != nil {
		s.notifier.Publish(userID, eventType, event)
	}
}

// GetRecentEvents retrieves the most recent events of a user.
func (s *EventService) GetRecentEvents(ctx context.Context, userID string, limit int) ([]models.Event, error) {
	events := []models.Event{}
	err := s.db.SelectContext(ctx, &events, s.db.Rebind(
		"SELECT id, user_id, type, message, created_at FROM events WHERE user_id = ? ORDER BY created_at DESC LIMIT ?"),
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
