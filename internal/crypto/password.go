// Package crypto implements the password-hashing collaborator of the
// authentication service. Passwords are hashed with bcrypt, which embeds a
// per-password salt into the digest, so no separate salt management is
// required.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher produces and verifies one-way, salted password digests.
// The zero cost value falls back to bcrypt.DefaultCost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher constructs a PasswordHasher with the given bcrypt work
// factor. Pass 0 to use bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt digest of the given plaintext password.
//
// Returns an error if the password exceeds bcrypt's 72-byte input limit or
// hashing fails for any other reason.
func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// Verify reports whether the plaintext password matches the stored digest.
// Any comparison failure (including a malformed digest) reports false.
func (h *PasswordHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
