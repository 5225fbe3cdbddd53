package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/cumpas/cumpas-sync/internal/database/migrations"
	"github.com/cumpas/cumpas-sync/internal/logger"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// New opens a connection pool for the given driver ("sqlite" or "postgres")
// and verifies it with a ping.
func New(driver, dataSourceName string) (*sqlx.DB, error) {
	var (
		db       *sql.DB
		bindName string
		err      error
	)

	switch driver {
	case "sqlite":
		db, err = sql.Open("sqlite", withSQLitePragmas(dataSourceName))
		bindName = "sqlite3"
	case "postgres":
		db, err = sql.Open("pgx", dataSourceName)
		bindName = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return sqlx.NewDb(db, bindName), nil
}

func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// Migrate applies all pending schema migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	dialect := "sqlite3"
	if db.DriverName() == "postgres" {
		dialect = "postgres"
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(logger.GooseLogger{})
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error or panic. Panics are rethrown.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(tx)
	return err
}
