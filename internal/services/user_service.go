package services

import (
	"database/sql"
	"errors"

	"github.com/metcal/asset-api/internal/auth"
	"github.com/metcal/asset-api/internal/models"
)

// ErrUserNotFound is returned when no user matches the given username.
var ErrUserNotFound = errors.New("user not found")

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByUsername(username string) (models.User, error)
	Authenticate(username, password string) bool
}

// UserService provides credential lookups and verification.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByUsername retrieves a single user by exact username match.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow(
		"SELECT id, username, password_hash, role, created_at FROM user WHERE username = ?",
		username,
	)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(username, password string) bool {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return false
	}
	return auth.VerifyPassword(password, user.PasswordHash)
}
