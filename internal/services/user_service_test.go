package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumpas/cumpas-sync/internal/models"
)

func TestUserService_CreateAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, models.RegisterRequest{
		Email:    "  Ana@Example.com ",
		Password: "secret123",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	got, err := svc.AuthenticateUser(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.AuthenticateUser(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateUser(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	exists, err := svc.UserExists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.UserExists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, models.RegisterRequest{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, models.RegisterRequest{Email: "A@X.com", Password: "other-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM users"))
	assert.Equal(t, 1, n)
}

func TestUserService_UserExistsWrapsDriverError(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	db := sqlx.NewDb(raw, "sqlite3")

	mock.ExpectQuery("SELECT COUNT").WithArgs("u1").WillReturnError(errors.New("disk I/O error"))

	svc := &UserService{db: db}
	_, err = svc.UserExists(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}
