// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the persistence layer of go-card-share:
// PostgreSQL-backed repositories for users, login attempts, and cards, plus
// an S3-backed blob store for card image assets.
//
// Repositories return sentinel errors (see errors.go) that callers match
// with errors.Is; driver-level failures are wrapped so the original error
// remains inspectable.
package store

import (
	"context"

	"github.com/MKhiriev/go-card-share/models"
)

// UserRepository owns user identity records.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields. The account role is decided atomically inside the INSERT:
	// the first account ever created becomes admin, every later one a
	// plain user. Returns ErrEmailAlreadyExists on duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks an account up by its normalized email.
	// Returns ErrNoUserWasFound when no account matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks an account up by its internal id.
	// Returns ErrNoUserWasFound when no account matches.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateUser applies a partial profile change and returns the updated
	// account. Returns ErrEmailAlreadyExists when the new email is taken
	// and ErrNoUserWasFound when the account does not exist.
	UpdateUser(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// ListUsers returns every account, newest first.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// LoginAttemptRepository owns the append-only authentication audit log.
type LoginAttemptRepository interface {
	// CreateAttempt appends one audit record and returns it with
	// server-assigned fields. Records are never mutated or deleted.
	CreateAttempt(ctx context.Context, attempt models.LoginAttempt) (models.LoginAttempt, error)

	// FindAttemptsByUser returns the attempts recorded for one account,
	// newest first.
	FindAttemptsByUser(ctx context.Context, userID int64) ([]models.LoginAttempt, error)
}

// CardRepository owns card resource records.
type CardRepository interface {
	// CreateCard persists a new card and returns it with server-assigned
	// fields (CardID, timestamps). Returns ErrShareIDAlreadyExists if the
	// generated share identifier collides.
	CreateCard(ctx context.Context, card models.Card) (models.Card, error)

	// FindCardByID returns a card by internal id regardless of its
	// soft-delete state. Returns ErrCardNotFound when absent.
	FindCardByID(ctx context.Context, cardID int64) (models.Card, error)

	// FindCardByShareID returns an active card by its public share
	// identifier. Soft-deleted cards are reported as ErrCardNotFound.
	FindCardByShareID(ctx context.Context, shareID string) (models.Card, error)

	// FindCardsByOwner returns the owner's active cards, newest first.
	FindCardsByOwner(ctx context.Context, ownerID int64) ([]models.Card, error)

	// UpdateCard applies a partial change: every non-nil update field
	// becomes its own SET clause, so concurrent updates collide per field
	// rather than per record. Returns the updated card.
	UpdateCard(ctx context.Context, cardID int64, update models.CardUpdate) (models.Card, error)

	// SetShareCode overwrites the stored share-code payload.
	SetShareCode(ctx context.Context, cardID int64, payload []byte) error

	// IncrementViewCount atomically adds one to the card's visit counter
	// and returns the new value.
	IncrementViewCount(ctx context.Context, cardID int64) (int64, error)

	// SetActive flips the soft-delete marker. Setting an already-matching
	// value is a no-op, not an error.
	SetActive(ctx context.Context, cardID int64, active bool) error
}

// BlobStore persists binary card assets outside the relational database.
// Implementations must make Delete idempotent: removing an absent key is
// not an error.
type BlobStore interface {
	// Save writes data under the given relative key.
	Save(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes the object stored under key. Deleting a key that
	// does not exist is a no-op.
	Delete(ctx context.Context, key string) error
}
