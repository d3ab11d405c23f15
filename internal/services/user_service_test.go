package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metcal/asset-api/internal/auth"
)

func TestUserService_Authenticate(t *testing.T) {
	db := newTestDB(t)
	hash, err := auth.HashPassword("password")
	require.NoError(t, err)
	_, err = db.Exec(
		"INSERT INTO user (username, password_hash, role) VALUES (?, ?, ?)",
		"admin", hash, "admin",
	)
	require.NoError(t, err)

	svc := NewUserService(db)

	assert.True(t, svc.Authenticate("admin", "password"))
	assert.False(t, svc.Authenticate("admin", "wrong"))
	assert.False(t, svc.Authenticate("nobody", "password"))
	assert.False(t, svc.Authenticate("", ""))
}

func TestUserService_GetUserByUsername(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(
		"INSERT INTO user (username, password_hash, role) VALUES (?, ?, ?)",
		"admin", "x", "admin",
	)
	require.NoError(t, err)

	svc := NewUserService(db)

	user, err := svc.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "admin", user.Role)
	assert.NotEmpty(t, user.CreatedAt)

	_, err = svc.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_MalformedStoredHash(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(
		"INSERT INTO user (username, password_hash, role) VALUES (?, ?, ?)",
		"admin", "corrupt", "admin",
	)
	require.NoError(t, err)

	svc := NewUserService(db)
	assert.False(t, svc.Authenticate("admin", "password"))
}
