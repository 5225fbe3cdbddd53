package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/cumpas/cumpas-sync/internal/database"
	"github.com/cumpas/cumpas-sync/internal/models"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.New("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func createTestUser(t *testing.T, db *sqlx.DB, email string) models.User {
	t.Helper()
	user, err := NewUserService(db).CreateUser(context.Background(), models.RegisterRequest{Email: email, Password: "secret123"})
	require.NoError(t, err)
	return user
}

type recordedEvent struct {
	UserID, Type, Message string
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeRecorder) Record(_ context.Context, userID, eventType, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{userID, eventType, message})
}

func (f *fakeRecorder) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}
