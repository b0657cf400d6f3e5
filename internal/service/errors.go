package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the single error surfaced for every login
	// failure branch (unknown email, wrong password, inactive account),
	// so callers cannot distinguish them. The precise reason is written
	// to the login audit log instead.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrAccessDenied = errors.New("access denied")

	ErrWrongPassword           = errors.New("current password is wrong")
	ErrPasswordConfirmMismatch = errors.New("password confirmation does not match")
	ErrSamePassword            = errors.New("new password must differ from the current one")
)
