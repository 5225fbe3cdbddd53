package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumpas/cumpas-sync/internal/models"
)

func TestPomodoroService_CompleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com")
	b := createTestUser(t, db, "b@x.com")
	events := &fakeRecorder{}
	svc := NewPomodoroService(db, events)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, a.ID, models.PomodoroInput{Duration: 25})
	require.NoError(t, err)
	assert.Equal(t, models.PomodoroWork, session.Type)
	assert.False(t, session.Completed)
	assert.Nil(t, session.EndedAt)

	_, err = svc.CompleteSession(ctx, b.ID, session.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := svc.CompleteSession(ctx, a.ID, session.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)
	require.NotNil(t, first.EndedAt)

	second, err := svc.CompleteSession(ctx, a.ID, session.ID)
	require.NoError(t, err)
	assert.True(t, second.Completed)

	assert.Equal(t, []string{EventPomodoroCompleted}, events.types())
}

func TestPomodoroService_Stats(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a@x.com")
	svc := NewPomodoroService(db, nil)
	ctx := context.Background()

	complete := func(in models.PomodoroInput) {
		s, err := svc.CreateSession(ctx, a.ID, in)
		require.NoError(t, err)
		_, err = svc.CompleteSession(ctx, a.ID, s.ID)
		require.NoError(t, err)
	}
	complete(models.PomodoroInput{Type: "work", Duration: 25})
	complete(models.PomodoroInput{Type: "work", Duration: 50})
	complete(models.PomodoroInput{Type: models.PomodoroShortBreak, Duration: 5})
	complete(models.PomodoroInput{Type: models.PomodoroLongBreak, Duration: 15})
	// Unfinished sessions are not counted.
	_, err := svc.CreateSession(ctx, a.ID, models.PomodoroInput{Type: "work", Duration: 25})
	require.NoError(t, err)

	stats, err := svc.GetStats(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PomodoroStats{
		TotalSessions: 4,
		TotalMinutes:  95,
		WorkSessions:  2,
		WorkMinutes:   75,
		BreakSessions: 2,
		BreakMinutes:  20,
	}, stats)

	sessions, err := svc.ListSessions(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 5)
}
