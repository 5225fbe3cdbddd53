package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
	UserExists(ctx context.Context, id string) (bool, error)
	CreateUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sqlx.DB
	// dummyHash is compared against when the email is unknown, so that
	// unknown and known emails cost the same bcrypt work.
	dummyHash string
}

// NewUserService creates a new UserService.
func NewUserService(db *sqlx.DB) *UserService {
	dummy, _ := auth.HashPassword(uuid.New().String())
	return &UserService{db: db, dummyHash: dummy}
}

const userColumns = "id, email, password_hash, name, university, major, created_at"

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UserExists reports whether a user with the given id is still registered.
func (s *UserService) UserExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.db.Rebind("SELECT COUNT(*) FROM users WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return n > 0, nil
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind("SELECT "+userColumns+" FROM users WHERE email = ?"), normalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// CreateUser registers a new user, hashing their password. A second
// registration with the same email fails with ErrEmailTaken.
func (s *UserService) CreateUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.GetUserByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(req.Name),
		University:   strings.TrimSpace(req.University),
		Major:        strings.TrimSpace(req.Major),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(
		"INSERT INTO users (id, email, password_hash, name, university, major, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"),
		user.ID, user.Email, user.PasswordHash, user.Name, user.University, user.Major, user.CreatedAt)
	if err != nil {
		// A concurrent registration may have won the unique index.
		if _, lookupErr := s.GetUserByEmail(ctx, email); lookupErr == nil {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		auth.CheckPassword(s.dummyHash, password)
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
