package models

// AuthResponse is the body returned by the register and login endpoints:
// the sanitized account plus the compact session token.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// MessageResponse carries a human-readable confirmation for operations that
// produce no resource body (logout, password change, card removal).
type MessageResponse struct {
	Message string `json:"message"`
}
