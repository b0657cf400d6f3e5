package models

import "time"

// Failure reasons recorded in the audit log. These values are internal:
// they are persisted for auditing but never surfaced to the caller, who
// always receives the same generic authentication error.
const (
	FailureReasonNotFound        = "not found"
	FailureReasonInvalidPassword = "invalid password"
	FailureReasonInactive        = "inactive"
)

// LoginAttempt is an append-only audit record of a single authentication
// attempt. Exactly one record is written per Login call, successful or not.
type LoginAttempt struct {
	// AttemptID is the internal unique identifier of the record.
	AttemptID int64 `json:"id"`

	// UserID references the account the attempt resolved to.
	// It is nil when the supplied email matched no account.
	UserID *int64 `json:"user_id,omitempty"`

	// Platform is the classified client platform (see DetectPlatform).
	Platform Platform `json:"platform"`

	// IPAddress is the client network address as seen by the server.
	IPAddress string `json:"ip_address"`

	// UserAgent is the raw client agent string.
	UserAgent string `json:"user_agent"`

	// IsSuccessful reports whether the attempt produced a session token.
	IsSuccessful bool `json:"is_successful"`

	// FailureReason is the precise internal reason for a failed attempt.
	// Empty on success.
	FailureReason string `json:"failure_reason,omitempty"`

	// CreatedAt is the timestamp of the attempt.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the LoginAttempt model.
func (a LoginAttempt) TableName() string {
	return "login_attempts"
}

// ClientMeta carries the request-level client attributes captured by the
// transport layer and passed explicitly into the authentication service.
type ClientMeta struct {
	Platform  Platform
	IPAddress string
	UserAgent string
}
