package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/metcal/asset-api/internal/config"
	"github.com/metcal/asset-api/internal/models"
)

var (
	// ErrTokenExpired means the signature checked out but the token is past
	// its expiry instant.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers bad signatures, malformed tokens, and wrong
	// issuer or audience.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims defines the JWT claims structure. The subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
}

type contextKey string

const (
	userContextKey     = contextKey("currentUser")
	recorderContextKey = contextKey("userRecorder")
)

// CurrentUser returns the authenticated username bound to the request context.
func CurrentUser(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(userContextKey).(string)
	return username, ok
}

// userRecorder lets the access-log middleware, which runs outside the auth
// middleware, observe the authenticated username after the handler returns.
type userRecorder struct {
	username string
}

// WithUserRecorder installs a recorder into the context.
func WithUserRecorder(ctx context.Context) context.Context {
	return context.WithValue(ctx, recorderContextKey, &userRecorder{})
}

// RecordedUser returns the username captured during authentication, or
// "anonymous" when the request never authenticated.
func RecordedUser(ctx context.Context) string {
	if rec, ok := ctx.Value(recorderContextKey).(*userRecorder); ok && rec.username != "" {
		return rec.username
	}
	return "anonymous"
}

// TokenService issues and verifies signed bearer tokens. Tokens are
// self-contained; no issued-token state is kept server-side.
type TokenService struct {
	secret   []byte
	method   jwt.SigningMethod
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenService builds a TokenService from configuration.
func NewTokenService(cfg *config.Config) (*TokenService, error) {
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.JWTAlgorithm)
	}
	return &TokenService{
		secret:   []byte(cfg.JWTSecretKey),
		method:   method,
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      time.Duration(cfg.JWTExpiresHours) * time.Hour,
	}, nil
}

// Issue creates a signed token for the given username.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// Verify decodes the token and checks signature, issuer, audience, and expiry
// in one pass. Expiry is checked strictly, with no leeway.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Middleware creates a middleware enforcing bearer token authentication. On
// success the token subject is bound into the request context.
func (s *TokenService) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn().Str("path", r.URL.Path).Msg("missing bearer token")
				unauthorized(w, "Bearer token required")
				return
			}

			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			claims, err := s.Verify(tokenStr)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					unauthorized(w, "Token expired")
				} else {
					unauthorized(w, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims.Subject)
			if rec, ok := ctx.Value(recorderContextKey).(*userRecorder); ok {
				rec.username = claims.Subject
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{Detail: detail})
}
