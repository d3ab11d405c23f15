package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/metcal/asset-api/internal/auth"
	"github.com/metcal/asset-api/internal/models"
	"github.com/metcal/asset-api/internal/services"
)

// AuthHandler handles credential verification and token issuance.
type AuthHandler struct {
	users     services.UserServiceProvider
	tokens    *auth.TokenService
	expiresIn int
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.TokenService, expiresIn int) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, expiresIn: expiresIn}
}

// IssueToken handles POST /api/token: verifies the credentials and returns a
// bearer token. Unknown usernames and wrong passwords produce the same
// response.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var payload models.TokenRequest
	if fieldErrors := models.DecodeStrict(r.Body, &payload); fieldErrors != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", fieldErrors)
		return
	}
	if fieldErrors := payload.Validate(); len(fieldErrors) > 0 {
		writeError(w, http.StatusBadRequest, "Invalid request payload", fieldErrors)
		return
	}

	if !h.users.Authenticate(payload.Username, payload.Password) {
		log.Warn().Str("username", payload.Username).Msg("failed login")
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := h.tokens.Issue(payload.Username)
	if err != nil {
		log.Error().Err(err).Str("username", payload.Username).Msg("failed to issue token")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   h.expiresIn,
	})
}

// Health handles GET /, the unauthenticated liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
