package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cumpas/cumpas-sync/internal/models"
)

// StudyServiceProvider defines the interface for study notes and tasks.
type StudyServiceProvider interface {
	ListNotes(ctx context.Context, userID string) ([]models.StudyNote, error)
	CreateNote(ctx context.Context, userID string, in models.StudyNoteInput) (models.StudyNote, error)
	UpdateNote(ctx context.Context, userID, id string, patch models.StudyNotePatch) (models.StudyNote, error)
	DeleteNote(ctx context.Context, userID, id string) error

	ListTasks(ctx context.Context, userID string) ([]models.StudyTask, error)
	CreateTask(ctx context.Context, userID string, in models.StudyTaskInput) (models.StudyTask, error)
	UpdateTask(ctx context.Context, userID, id string, patch models.StudyTaskPatch) (models.StudyTask, error)
	DeleteTask(ctx context.Context, userID, id string) error
}

// StudyService provides business logic for study notes and tasks.
type StudyService struct {
	db     *sqlx.DB
	events EventRecorder
	now    func() time.Time
}

// NewStudyService creates a new StudyService.
func NewStudyService(db *sqlx.DB, events EventRecorder) *StudyService {
	return &StudyService{db: db, events: events, now: time.Now}
}

const (
	studyNoteColumns = "id, user_id, title, content, subject, created_at, updated_at"
	studyTaskColumns = "id, user_id, title, description, subject, due_date, priority, completed, created_at, updated_at"
)

// ListNotes returns a user's notes, most recently edited first.
func (s *StudyService) ListNotes(ctx context.Context, userID string) ([]models.StudyNote, error) {
	notes := []models.StudyNote{}
	err := s.db.SelectContext(ctx, &notes, s.db.Rebind(
		"SELECT "+studyNoteColumns+" FROM study_notes WHERE user_id = ? ORDER BY updated_at DESC"), userID)
	if err != nil {
		return nil, fmt.Errorf("list study notes: %w", err)
	}
	return notes, nil
}

func (s *StudyService) CreateNote(ctx context.Context, userID string, in models.StudyNoteInput) (models.StudyNote, error) {
	now := s.now().UTC()
	note := models.StudyNote{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		Subject:   in.Subject,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.NamedExecContext(ctx, `INSERT INTO study_notes (id, user_id, title, content, subject, created_at, updated_at)
		VALUES (:id, :user_id, :title, :content, :subject, :created_at, :updated_at)`, note)
	if err != nil {
		return models.StudyNote{}, fmt.Errorf("insert study note: %w", err)
	}
	return note, nil
}

func (s *StudyService) UpdateNote(ctx context.Context, userID, id string, patch models.StudyNotePatch) (models.StudyNote, error) {
	b := &updateBuilder{}
	setIf(b, "title", patch.Title)
	setIf(b, "content", patch.Content)
	setIf(b, "subject", patch.Subject)
	if !b.empty() {
		b.set("updated_at", s.now().UTC())
	}

	if err := updateOwned(ctx, s.db, "study_notes", id, userID, b); err != nil {
		return models.StudyNote{}, err
	}

	var note models.StudyNote
	err := getOwned(ctx, s.db, &note, "SELECT "+studyNoteColumns+" FROM study_notes WHERE id = ? AND user_id = ?", id, userID)
	return note, err
}

func (s *StudyService) DeleteNote(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, s.db, "study_notes", id, userID)
}

// ListTasks returns a user's tasks: open tasks first, then by due date.
func (s *StudyService) ListTasks(ctx context.Context, userID string) ([]models.StudyTask, error) {
	tasks := []models.StudyTask{}
	err := s.db.SelectContext(ctx, &tasks, s.db.Rebind(
		"SELECT "+studyTaskColumns+" FROM study_tasks WHERE user_id = ? ORDER BY completed ASC, due_date IS NULL, due_date ASC, created_at DESC"), userID)
	if err != nil {
		return nil, fmt.Errorf("list study tasks: %w", err)
	}
	return tasks, nil
}

func (s *StudyService) CreateTask(ctx context.Context, userID string, in models.StudyTaskInput) (models.StudyTask, error) {
	now := s.now().UTC()
	task := models.StudyTask{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Subject:     in.Subject,
		DueDate:     utcPtr(in.DueDate),
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = "medium"
	}

	_, err := s.db.NamedExecContext(ctx, `INSERT INTO study_tasks (id, user_id, title, description, subject, due_date, priority, completed, created_at, updated_at)
		VALUES (:id, :user_id, :title, :description, :subject, :due_date, :priority, :completed, :created_at, :updated_at)`, task)
	if err != nil {
		return models.StudyTask{}, fmt.Errorf("insert study task: %w", err)
	}
	return task, nil
}

// UpdateTask applies patch. Moving a task to completed records an event.
func (s *StudyService) UpdateTask(ctx context.Context, userID, id string, patch models.StudyTaskPatch) (models.StudyTask, error) {
	var before models.StudyTask
	if err := getOwned(ctx, s.db, &before, "SELECT "+studyTaskColumns+" FROM study_tasks WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return models.StudyTask{}, err
	}

	b := &updateBuilder{}
	setIf(b, "title", patch.Title)
	setIf(b, "description", patch.Description)
	setIf(b, "subject", patch.Subject)
	setNullable(b, "due_date", patch.DueDate)
	setIf(b, "priority", patch.Priority)
	setIf(b, "completed", patch.Completed)
	if !b.empty() {
		b.set("updated_at", s.now().UTC())
	}

	if err := updateOwned(ctx, s.db, "study_tasks", id, userID, b); err != nil {
		return models.StudyTask{}, err
	}

	var task models.StudyTask
	if err := getOwned(ctx, s.db, &task, "SELECT "+studyTaskColumns+" FROM study_tasks WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return models.StudyTask{}, err
	}
	if task.Completed && !before.Completed && s.events != nil {
		s.events.Record(ctx, userID, EventTaskCompleted, fmt.Sprintf("Completed task %q", task.Title))
	}
	return task, nil
}

func (s *StudyService) DeleteTask(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, s.db, "study_tasks", id, userID)
}

func utcPtr(t *models.Timestamp) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
