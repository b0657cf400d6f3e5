package models

import "time"

// Roles assignable to a user account. The very first account registered in
// the system receives RoleAdmin; every later account receives RoleUser.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique, case-normalized user identifier used during
	// authentication. Normalization (trim + lowercase) happens at the
	// service boundary before the value reaches the store.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This value MUST be a derived value, never plaintext, and is never
	// serialized to JSON.
	PasswordHash string `json:"-"`

	// Role is either RoleAdmin or RoleUser.
	Role string `json:"role"`

	// IsActive marks whether the account may log in. Inactive accounts
	// fail authentication with the same error as wrong credentials.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last profile or password change.
	UpdatedAt time.Time `json:"updated_at"`
}

// Sanitized returns a copy of the user that is safe to hand to callers:
// the password hash is cleared.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ProfileUpdate is a partial self-service profile change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}
