package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// Role determines what a user is allowed to do
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account
type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"` // unique, stored lowercased
	Email    string `json:"email"`    // unique
	// PasswordHash is the bcrypt hash; the plaintext is never stored.
	// API responses use response types, so the hash never leaves storage.
	PasswordHash string `json:"password_hash"`
	Role         Role   `json:"role"`
	// AttemptsTotal accumulates the attempt counts of completed won games
	AttemptsTotal int `json:"attempts_total"`
	// TeamID is a weak reference to the user's team, empty if none.
	// Invariant: a non-empty TeamID implies membership in that team's Members set.
	TeamID    TeamID    `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user may access admin-only surfaces
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
