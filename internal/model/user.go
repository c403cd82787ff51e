package model

import "time"

// Role is a user's permission level. Only admins can sign in to the
// management surface; "user" accounts exist for bookkeeping.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an account that can (if Role is admin) sign in to the admin panel.
//
// WHY PasswordHash AND NOT Password?
// We never store or compare plain-text passwords. PasswordHash holds a bcrypt
// hash (salt included in the string); login verifies with bcrypt's
// constant-time comparison. The `json:"-"` tag keeps the hash out of every
// API response.
//
// LastLogin is a pointer so that "never logged in" serializes as an absent
// field rather than a zero timestamp.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}
