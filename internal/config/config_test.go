package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, "asset.db", cfg.DatabasePath)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 24, cfg.JWTExpiresHours)
	assert.Equal(t, "metcal-api", cfg.JWTIssuer)
	assert.Equal(t, "metcal-clients", cfg.JWTAudience)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRES_HOURS", "2")
	t.Setenv("JWT_SECRET_KEY", "env-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 2, cfg.JWTExpiresHours)
	assert.Equal(t, "env-secret", cfg.JWTSecretKey)
}

func TestLoadRejectsBadIntegers(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "8000")
	t.Setenv("JWT_EXPIRES_HOURS", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestExpiresIn(t *testing.T) {
	cfg := &Config{JWTExpiresHours: 24}
	assert.Equal(t, 86400, cfg.ExpiresIn())
}
