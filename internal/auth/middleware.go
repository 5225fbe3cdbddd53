package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"
)

// UserLookup confirms that a token's user still exists.
type UserLookup interface {
	UserExists(ctx context.Context, id string) (bool, error)
}

// Authenticator resolves bearer tokens into request identities.
type Authenticator struct {
	tokens  *TokenIssuer
	users   UserLookup
	revoker Revoker
}

// NewAuthenticator creates an Authenticator. A nil revoker disables
// revocation checks.
func NewAuthenticator(tokens *TokenIssuer, users UserLookup, revoker Revoker) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, revoker: revoker}
}

// Middleware protects routes with the Authorization: Bearer header.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return a.handler(next, false)
}

// WebSocketMiddleware also accepts the token in the "token" query parameter,
// since browsers cannot set headers on websocket upgrades.
func (a *Authenticator) WebSocketMiddleware(next http.Handler) http.Handler {
	return a.handler(next, true)
}

func (a *Authenticator) handler(next http.Handler, allowQuery bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" && allowQuery {
			tokenStr = r.URL.Query().Get("token")
		}

		identity, err := a.Resolve(r.Context(), tokenStr)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "Invalid token"
			switch {
			case errors.Is(err, ErrAuthenticationRequired):
				msg = "Authentication required"
			case errors.Is(err, ErrInvalidToken):
			default:
				status = http.StatusInternalServerError
				msg = "Internal server error"
				hlog.FromRequest(r).Error().Err(err).Msg("Failed to resolve identity")
			}
			if status == http.StatusUnauthorized {
				hlog.FromRequest(r).Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected unauthenticated request")
			}
			writeError(w, status, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), identity)))
	})
}

// Resolve verifies tokenStr and confirms that it is not revoked and that
// its user still exists.
func (a *Authenticator) Resolve(ctx context.Context, tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, ErrAuthenticationRequired
	}

	claims, err := a.tokens.Verify(tokenStr)
	if err != nil {
		return Identity{}, err
	}

	if a.revoker != nil && claims.ID != "" {
		revoked, err := a.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return Identity{}, err
		}
		if revoked {
			return Identity{}, ErrInvalidToken
		}
	}

	exists, err := a.users.UserExists(ctx, claims.UserID)
	if err != nil {
		return Identity{}, err
	}
	if !exists {
		return Identity{}, ErrInvalidToken
	}

	identity := Identity{ID: claims.UserID, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
