package models

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordChange is the self-service password change request body.
// NewPassword and ConfirmPassword must match.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// FileUpload is a decoded multipart image received by the handler layer and
// passed to the card service for blob-store persistence.
type FileUpload struct {
	// Data is the raw image payload.
	Data []byte

	// ContentType is the declared MIME type (validated at the handler).
	ContentType string

	// Ext is the file extension derived from ContentType, dot included
	// (e.g. ".png").
	Ext string
}

// CardAssets groups the optional image uploads accompanying a card create
// or update. Nil fields mean "no change".
type CardAssets struct {
	Avatar *FileUpload
	Cover  *FileUpload
}
