package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSQLitePragmas(t *testing.T) {
	assert.Equal(t, "a.db?"+sqlitePragmas, withSQLitePragmas("a.db"))
	assert.Equal(t, "a.db?mode=rwc&"+sqlitePragmas, withSQLitePragmas("a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=journal_mode(WAL)", withSQLitePragmas("a.db?_pragma=journal_mode(WAL)"))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New("oracle", "whatever")
	assert.Error(t, err)
}

func TestNewAndMigrate_SQLite(t *testing.T) {
	db, err := New("sqlite", filepath.Join(t.TempDir(), "cumpas.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(context.Background(), db))
	// Second run is a no-op.
	require.NoError(t, Migrate(context.Background(), db))

	for _, table := range []string{"users", "habits", "finance_transactions", "study_notes", "study_tasks",
		"goals", "classes", "attendance", "pomodoro_sessions", "quick_notes", "events"} {
		var n int
		err := db.Get(&n, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "table %s", table)
	}

	var fk int
	require.NoError(t, db.Get(&fk, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, fk)
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "sqlmock")
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec("INSERT INTO t VALUES (1)")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err = WithTx(context.Background(), db, func(tx *sqlx.Tx) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_PanicRollsBack(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "sqlmock")
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = WithTx(context.Background(), db, func(tx *sqlx.Tx) error {
			panic("kaboom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
