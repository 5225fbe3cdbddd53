package auth

import (
	"context"
	"time"
)

type contextKey string

const identityKey = contextKey("identity")

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	ID        string
	TokenID   string
	ExpiresAt time.Time
}

// WithUser returns a copy of ctx carrying id.
func WithUser(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// UserFromContext returns the identity attached by the auth middleware.
func UserFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// UserIDFromContext returns the caller's user id, or "" when the request is
// unauthenticated.
func UserIDFromContext(ctx context.Context) string {
	id, _ := UserFromContext(ctx)
	return id.ID
}
