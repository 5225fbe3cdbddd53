package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/cumpas/cumpas-sync/internal/models"
)

// updateBuilder collects the SET clause of a partial update.
type updateBuilder struct {
	sets []string
	args []interface{}
}

func (b *updateBuilder) set(column string, value interface{}) {
	b.sets = append(b.sets, column+" = ?")
	b.args = append(b.args, value)
}

func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

// setIf adds column to the update when the patch field was supplied.
func setIf[T any](b *updateBuilder, column string, value *T) {
	if value != nil {
		b.set(column, *value)
	}
}

// setNullable adds column when the patch carried the key, writing NULL for
// an explicit null.
func setNullable(b *updateBuilder, column string, v models.NullTimestamp) {
	switch {
	case !v.Set:
	case !v.Valid:
		b.set(column, nil)
	default:
		b.set(column, v.Time.UTC())
	}
}

// updateOwned applies b to the row id of table, but only if it belongs to
// userID. The ownership check and the write are a single statement.
func updateOwned(ctx context.Context, db sqlx.ExtContext, table, id, userID string, b *updateBuilder) error {
	if b.empty() {
		return ensureOwned(ctx, db, table, id, userID)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? AND user_id = ?", table, strings.Join(b.sets, ", "))
	args := append(append([]interface{}{}, b.args...), id, userID)

	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return checkAffected(res)
}

// deleteOwned removes the row id of table if it belongs to userID.
func deleteOwned(ctx context.Context, db sqlx.ExtContext, table, id, userID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ? AND user_id = ?", table)
	res, err := db.ExecContext(ctx, db.Rebind(query), id, userID)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return checkAffected(res)
}

func ensureOwned(ctx context.Context, db sqlx.ExtContext, table, id, userID string) error {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE id = ? AND user_id = ?", table)
	var one int
	err := sqlx.GetContext(ctx, db, &one, db.Rebind(query), id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select from %s: %w", table, err)
	}
	return nil
}

// getOwned loads a single row into dest, mapping a missing or foreign row
// to ErrNotFound.
func getOwned(ctx context.Context, db sqlx.ExtContext, dest interface{}, query, id, userID string) error {
	err := sqlx.GetContext(ctx, db, dest, db.Rebind(query), id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
