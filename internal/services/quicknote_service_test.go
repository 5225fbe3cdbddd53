package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumpas/cumpas-sync/internal/models"
)

func TestQuickNoteService(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com")
	b := createTestUser(t, db, "b@x.com")
	svc := NewQuickNoteService(db)
	ctx := context.Background()

	clock := at("2026-10-19T08:00:00Z")
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	plain, err := svc.CreateQuickNote(ctx, a.ID, models.QuickNoteInput{Content: "buy milk"})
	require.NoError(t, err)
	pinned, err := svc.CreateQuickNote(ctx, a.ID, models.QuickNoteInput{Content: "exam friday", Pinned: true})
	require.NoError(t, err)
	old, err := svc.CreateQuickNote(ctx, a.ID, models.QuickNoteInput{Content: "old idea"})
	require.NoError(t, err)

	_, err = svc.UpdateQuickNote(ctx, a.ID, old.ID, models.QuickNotePatch{Archived: ptr(true)})
	require.NoError(t, err)

	active, err := svc.ListQuickNotes(ctx, a.ID, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, pinned.ID, active[0].ID)
	assert.Equal(t, plain.ID, active[1].ID)

	archived, err := svc.ListQuickNotes(ctx, a.ID, true)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, old.ID, archived[0].ID)

	_, err = svc.UpdateQuickNote(ctx, b.ID, plain.ID, models.QuickNotePatch{Pinned: ptr(true)})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteQuickNote(ctx, b.ID, plain.ID), ErrNotFound)
	require.NoError(t, svc.DeleteQuickNote(ctx, a.ID, plain.ID))
}
