package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cumpas/cumpas-sync/internal/models"
)

// GoalServiceProvider defines the interface for goal services.
type GoalServiceProvider interface {
	ListGoals(ctx context.Context, userID string) ([]models.Goal, error)
	CreateGoal(ctx context.Context, userID string, in models.GoalInput) (models.Goal, error)
	UpdateGoal(ctx context.Context, userID, id string, patch models.GoalPatch) (models.Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error
}

// GoalService provides business logic for goals.
type GoalService struct {
	db     *sqlx.DB
	events EventRecorder
	now    func() time.Time
}

// NewGoalService creates a new GoalService.
func NewGoalService(db *sqlx.DB, events EventRecorder) *GoalService {
	return &GoalService{db: db, events: events, now: time.Now}
}

const goalColumns = "id, user_id, title, description, category, target_date, progress, completed, created_at, updated_at"

func (s *GoalService) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	goals := []models.Goal{}
	err := s.db.SelectContext(ctx, &goals, s.db.Rebind(
		"SELECT "+goalColumns+" FROM goals WHERE user_id = ? ORDER BY created_at DESC"), userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) getGoal(ctx context.Context, userID, id string) (models.Goal, error) {
	var goal models.Goal
	err := getOwned(ctx, s.db, &goal, "SELECT "+goalColumns+" FROM goals WHERE id = ? AND user_id = ?", id, userID)
	return goal, err
}

func (s *GoalService) CreateGoal(ctx context.Context, userID string, in models.GoalInput) (models.Goal, error) {
	now := s.now().UTC()
	goal := models.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		TargetDate:  utcPtr(in.TargetDate),
		Progress:    in.Progress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.NamedExecContext(ctx, `INSERT INTO goals (id, user_id, title, description, category, target_date, progress, completed, created_at, updated_at)
		VALUES (:id, :user_id, :title, :description, :category, :target_date, :progress, :completed, :created_at, :updated_at)`, goal)
	if err != nil {
		return models.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	return goal, nil
}

// UpdateGoal applies patch. Moving a goal to completed records an event.
func (s *GoalService) UpdateGoal(ctx context.Context, userID, id string, patch models.GoalPatch) (models.Goal, error) {
	before, err := s.getGoal(ctx, userID, id)
	if err != nil {
		return models.Goal{}, err
	}

	b := &updateBuilder{}
	setIf(b, "title", patch.Title)
	setIf(b, "description", patch.Description)
	setIf(b, "category", patch.Category)
	setNullable(b, "target_date", patch.TargetDate)
	setIf(b, "progress", patch.Progress)
	setIf(b, "completed", patch.Completed)
	if !b.empty() {
		b.set("updated_at", s.now().UTC())
	}

	if err := updateOwned(ctx, s.db, "goals", id, userID, b); err != nil {
		return models.Goal{}, err
	}

	goal, err := s.getGoal(ctx, userID, id)
	if err != nil {
		return models.Goal{}, err
	}
	if goal.Completed && !before.Completed && s.events != nil {
		s.events.Record(ctx, userID, EventGoalCompleted, fmt.Sprintf("Achieved goal %q", goal.Title))
	}
	return goal, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, s.db, "goals", id, userID)
}
