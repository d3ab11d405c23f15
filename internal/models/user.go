package models

// User represents an account allowed to request tokens.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose this to the client
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
}
