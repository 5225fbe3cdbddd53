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

// HabitServiceProvider defines the interface for habit services.
type HabitServiceProvider interface {
	ListHabits(ctx context.Context, userID string) ([]models.Habit, error)
	CreateHabit(ctx context.Context, userID string, in models.HabitInput) (models.Habit, error)
	UpdateHabit(ctx context.Context, userID, id string, patch models.HabitPatch) (models.Habit, error)
	DeleteHabit(ctx context.Context, userID, id string) error
	CompleteHabit(ctx context.Context, userID, id string) (models.Habit, error)
}

// HabitService provides business logic for habits and their streaks.
type HabitService struct {
	db     *sqlx.DB
	events EventRecorder
	loc    *time.Location
	now    func() time.Time
}

// NewHabitService creates a new HabitService. Calendar days for streaks are
// evaluated in loc.
func NewHabitService(db *sqlx.DB, events EventRecorder, loc *time.Location) *HabitService {
	if loc == nil {
		loc = time.UTC
	}
	return &HabitService{db: db, events: events, loc: loc, now: time.Now}
}

const habitColumns = "id, user_id, name, description, frequency, color, completed, streak, last_completed, created_at, updated_at"

// ListHabits returns the habits of a user, newest first.
func (s *HabitService) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	habits := []models.Habit{}
	err := s.db.SelectContext(ctx, &habits, s.db.Rebind(
		"SELECT "+habitColumns+" FROM habits WHERE user_id = ? ORDER BY created_at DESC"), userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// GetHabit returns a single habit owned by userID.
func (s *HabitService) GetHabit(ctx context.Context, userID, id string) (models.Habit, error) {
	var habit models.Habit
	err := getOwned(ctx, s.db, &habit, "SELECT "+habitColumns+" FROM habits WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// CreateHabit stores a new habit for userID.
func (s *HabitService) CreateHabit(ctx context.Context, userID string, in models.HabitInput) (models.Habit, error) {
	now := s.now().UTC()
	habit := models.Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Frequency:   in.Frequency,
		Color:       in.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if habit.Frequency == "" {
		habit.Frequency = "daily"
	}

	_, err := s.db.NamedExecContext(ctx, `INSERT INTO habits (id, user_id, name, description, frequency, color, completed, streak, last_completed, created_at, updated_at)
		VALUES (:id, :user_id, :name, :description, :frequency, :color, :completed, :streak, :last_completed, :created_at, :updated_at)`, habit)
	if err != nil {
		return models.Habit{}, fmt.Errorf("insert habit: %w", err)
	}
	return habit, nil
}

// UpdateHabit applies the supplied fields of patch to a habit owned by userID.
func (s *HabitService) UpdateHabit(ctx context.Context, userID, id string, patch models.HabitPatch) (models.Habit, error) {
	b := &updateBuilder{}
	setIf(b, "name", patch.Name)
	setIf(b, "description", patch.Description)
	setIf(b, "frequency", patch.Frequency)
	setIf(b, "color", patch.Color)
	setIf(b, "completed", patch.Completed)
	setIf(b, "streak", patch.Streak)
	setNullable(b, "last_completed", patch.LastCompleted)
	if !b.empty() {
		b.set("updated_at", s.now().UTC())
	}

	if err := updateOwned(ctx, s.db, "habits", id, userID, b); err != nil {
		return models.Habit{}, err
	}
	return s.GetHabit(ctx, userID, id)
}

// DeleteHabit removes a habit owned by userID.
func (s *HabitService) DeleteHabit(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, s.db, "habits", id, userID)
}

// CompleteHabit marks a habit done for today and advances its streak.
func (s *HabitService) CompleteHabit(ctx context.Context, userID, id string) (models.Habit, error) {
	habit, err := s.GetHabit(ctx, userID, id)
	if err != nil {
		return models.Habit{}, err
	}

	now := s.now().UTC()
	streak, completed := NextStreak(habit.Streak, habit.LastCompleted, now, s.loc)

	b := &updateBuilder{}
	b.set("streak", streak)
	b.set("completed", completed)
	b.set("last_completed", now)
	b.set("updated_at", now)
	if err := updateOwned(ctx, s.db, "habits", id, userID, b); err != nil {
		return models.Habit{}, err
	}

	habit.Streak = streak
	habit.Completed = completed
	habit.LastCompleted = &now
	habit.UpdatedAt = now

	if s.events != nil {
		s.events.Record(ctx, userID, EventHabitCompleted, fmt.Sprintf("Completed habit %q (streak %d)", habit.Name, streak))
	}
	return habit, nil
}

// RolloverHabits applies DecayStreak to every habit and persists the rows
// that changed. It returns the number of updated habits.
func (s *HabitService) RolloverHabits(ctx context.Context) (int, error) {
	var habits []models.Habit
	err := s.db.SelectContext(ctx, &habits, "SELECT "+habitColumns+" FROM habits WHERE completed = TRUE OR streak > 0")
	if err != nil {
		return 0, fmt.Errorf("list habits for rollover: %w", err)
	}

	now := s.now().UTC()
	updated := 0
	for _, h := range habits {
		streak, completed := DecayStreak(h.Streak, h.Completed, h.LastCompleted, now, s.loc)
		if streak == h.Streak && completed == h.Completed {
			continue
		}

		b := &updateBuilder{}
		b.set("streak", streak)
		b.set("completed", completed)
		b.set("updated_at", now)
		if err := updateOwned(ctx, s.db, "habits", h.ID, h.UserID, b); err != nil {
			log.Warn().Err(err).Str("habit_id", h.ID).Msg("Failed to roll over habit")
			continue
		}
		updated++
	}
	return updated, nil
}
