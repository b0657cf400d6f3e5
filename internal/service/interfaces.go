package service

import (
	"context"

	"github.com/MKhiriev/go-card-share/internal/validators"
	"github.com/MKhiriev/go-card-share/models"
)

// AuthService owns account lifecycle and session tokens.
type AuthService interface {
	Register(ctx context.Context, input validators.RegistrationInput) (models.User, models.Token, error)
	Login(ctx context.Context, creds models.Credentials, meta models.ClientMeta) (models.User, models.Token, error)

	// Authorize verifies a raw bearer token and resolves the account it
	// belongs to.
	Authorize(ctx context.Context, tokenString string) (models.User, error)

	// RequireRole returns ErrAccessDenied unless the user holds the role.
	RequireRole(user models.User, role string) error

	FindUser(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)
	ChangePassword(ctx context.Context, userID int64, change models.PasswordChange) error

	ListUsers(ctx context.Context) ([]models.User, error)
	ListLoginAttempts(ctx context.Context, userID int64) ([]models.LoginAttempt, error)
}

// CardService owns the card resource lifecycle: create with share-code
// generation, reads with visit counting, per-field updates, soft deletion.
type CardService interface {
	Create(ctx context.Context, ownerID int64, card models.Card, assets models.CardAssets) (models.Card, error)
	FindAllForOwner(ctx context.Context, ownerID int64) ([]models.Card, error)

	// FindOne returns one card by internal id. requesterID is nil for
	// anonymous readers; any read by a non-owner counts as a visit.
	FindOne(ctx context.Context, cardID int64, requesterID *int64) (models.Card, error)

	// FindByShareID is the public lookup by the stable share identifier.
	// It always counts as an anonymous visit.
	FindByShareID(ctx context.Context, shareID string) (models.Card, error)

	Update(ctx context.Context, cardID int64, requesterID int64, update models.CardUpdate, assets models.CardAssets) (models.Card, error)
	Remove(ctx context.Context, cardID int64, requesterID int64) error
	RegenerateShareCode(ctx context.Context, cardID int64, requesterID int64) (models.Card, error)
}

// PasswordHasher produces and verifies one-way password digests.
// Implemented by internal/crypto.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// CodeEncoder renders text into a scannable visual code payload.
// Implemented by internal/adapter.
type CodeEncoder interface {
	Encode(content string) ([]byte, error)
}

// ShareIDGenerator produces globally-unique public card identifiers.
// Implemented by internal/utils.
type ShareIDGenerator interface {
	Generate() string
}
