package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cumpas/cumpas-sync/internal/models"
)

// QuickNoteServiceProvider defines the interface for quick note services.
type QuickNoteServiceProvider interface {
	ListQuickNotes(ctx context.Context, userID string, archived bool) ([]models.QuickNote, error)
	CreateQuickNote(ctx context.Context, userID string, in models.QuickNoteInput) (models.QuickNote, error)
	UpdateQuickNote(ctx context.Context, userID, id string, patch models.QuickNotePatch) (models.QuickNote, error)
	DeleteQuickNote(ctx context.Context, userID, id string) error
}

// QuickNoteService provides business logic for quick notes.
type QuickNoteService struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewQuickNoteService creates a new QuickNoteService.
func NewQuickNoteService(db *sqlx.DB) *QuickNoteService {
	return &QuickNoteService{db: db, now: time.Now}
}

const quickNoteColumns = "id, user_id, content, color, pinned, archived, created_at, updated_at"

// ListQuickNotes returns archived or active notes, pinned notes first.
func (s *QuickNoteService) ListQuickNotes(ctx context.Context, userID string, archived bool) ([]models.QuickNote, error) {
	notes := []models.QuickNote{}
	err := s.db.SelectContext(ctx, &notes, s.db.Rebind(
		"SELECT "+quickNoteColumns+" FROM quick_notes WHERE user_id = ? AND archived = ? ORDER BY pinned DESC, updated_at DESC"),
		userID, archived)
	if err != nil {
		return nil, fmt.Errorf("list quick notes: %w", err)
	}
	return notes, nil
}

func (s *QuickNoteService) CreateQuickNote(ctx context.Context, userID string, in models.QuickNoteInput) (models.QuickNote, error) {
	now := s.now().UTC()
	note := models.QuickNote{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   in.Content,
		Color:     in.Color,
		Pinned:    in.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.NamedExecContext(ctx, `INSERT INTO quick_notes (id, user_id, content, color, pinned, archived, created_at, updated_at)
		VALUES (:id, :user_id, :content, :color, :pinned, :archived, :created_at, :updated_at)`, note)
	if err != nil {
		return models.QuickNote{}, fmt.Errorf("insert quick note: %w", err)
	}
	return note, nil
}

func (s *QuickNoteService) UpdateQuickNote(ctx context.Context, userID, id string, patch models.QuickNotePatch) (models.QuickNote, error) {
	b := &updateBuilder{}
	setIf(b, "content", patch.Content)
	setIf(b, "color", patch.Color)
	setIf(b, "pinned", patch.Pinned)
	setIf(b, "archived", patch.Archived)
	if !b.empty() {
		b.set("updated_at", s.now().UTC())
	}

	if err := updateOwned(ctx, s.db, "quick_notes", id, userID, b); err != nil {
		return models.QuickNote{}, err
	}

	var note models.QuickNote
	err := getOwned(ctx, s.db, &note, "SELECT "+quickNoteColumns+" FROM quick_notes WHERE id = ? AND user_id = ?", id, userID)
	return note, err
}

func (s *QuickNoteService) DeleteQuickNote(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, s.db, "quick_notes", id, userID)
}
