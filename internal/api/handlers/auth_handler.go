package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/cumpas/cumpas-sync/internal/auth"
	"github.com/cumpas/cumpas-sync/internal/models"
	"github.com/cumpas/cumpas-sync/internal/services"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenIssuer
	revoker auth.Revoker
}

// NewAuthHandler creates a new AuthHandler. A nil revoker makes logout a
// no-op on the server side.
func NewAuthHandler(service services.UserServiceProvider, tokens *auth.TokenIssuer, revoker auth.Revoker) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens, revoker: revoker}
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload models.RegisterRequest
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), payload)
	if errors.Is(err, services.ErrEmailTaken) {
		respondError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to register user")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hlog.FromRequest(r).Info().Str("user_id", user.ID).Msg("User registered")
	respondJSON(w, http.StatusCreated, models.AuthResponse{User: user, Token: token})
}

// Login handles user authentication and JWT generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload models.LoginRequest
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	user, err := h.service.AuthenticateUser(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		hlog.FromRequest(r).Warn().Msg("Failed authentication attempt")
		respondError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to authenticate user")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, models.AuthResponse{User: user, Token: token})
}

// GetMe retrieves the currently authenticated user.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUserByID(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, r, err, "User")
		return
	}
	user.PasswordHash = ""
	respondJSON(w, http.StatusOK, user)
}

// Logout revokes the presented token until it would have expired.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.UserFromContext(r.Context())
	if h.revoker != nil && identity.TokenID != "" {
		if err := h.revoker.Revoke(r.Context(), identity.TokenID, identity.ExpiresAt); err != nil {
			hlog.FromRequest(r).Error().Err(err).Str("user_id", identity.ID).Msg("Failed to revoke token")
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}
	respondMessage(w, "Logged out")
}
