// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-card-share/internal/config"
	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/MKhiriev/go-card-share/internal/store"
	"github.com/MKhiriev/go-card-share/internal/utils"
	"github.com/MKhiriev/go-card-share/internal/validators"
	"github.com/MKhiriev/go-card-share/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, the login audit log,
// profile self-service, and the JWT session lifecycle.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// attemptRepository records every login outcome, successful or not.
	attemptRepository store.LoginAttemptRepository

	// hasher produces and verifies bcrypt password digests.
	hasher PasswordHasher

	// validator checks registration input, profile updates, and new
	// passwords before they reach the store.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, attemptRepository store.LoginAttemptRepository, hasher PasswordHasher, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    userRepository,
		attemptRepository: attemptRepository,
		hasher:            hasher,
		validator:         validators.NewAccountValidator(),
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		logger:            logger,
	}
}

// Register creates a new user account and immediately issues a session token.
//
// The email is trimmed and lowercased before it reaches the store; the role
// is decided atomically by the store (the first account ever created becomes
// admin, every later one a plain user).
//
// Returns the sanitized user and its token, or:
//   - ErrInvalidDataProvided when a field fails validation.
//   - A wrapped store.ErrEmailAlreadyExists when the email is taken.
func (a *authService) Register(ctx context.Context, input validators.RegistrationInput) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, input); err != nil {
		log.Error().Str("email", input.Email).Err(err).Msg("invalid registration data provided")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	passwordHash, err := a.hasher.Hash(input.Password)
	if err != nil {
		log.Err(err).Msg("password hashing ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("password hashing ended with error: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        normalizeEmail(input.Email),
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: passwordHash,
		IsActive:     true,
	})
	if err != nil {
		log.Err(err).Str("email", input.Email).Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.createToken(registeredUser)
	if err != nil {
		log.Err(err).Int64("id", registeredUser.UserID).Msg("token creation failed after registration")
		return models.User{}, models.Token{}, err
	}

	return registeredUser.Sanitized(), token, nil
}

// Login authenticates an existing user and issues a session token.
//
// Every outcome writes exactly one audit record before returning: unknown
// email, wrong password, and inactive account each record their precise
// reason but surface the same ErrInvalidCredentials, so a caller cannot
// probe which accounts exist. A failed audit write is logged and never
// changes the login outcome.
func (a *authService) Login(ctx context.Context, creds models.Credentials, meta models.ClientMeta) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByEmail(ctx, normalizeEmail(creds.Email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Error().Str("email", creds.Email).Msg("login failed: account not found")
			a.recordAttempt(ctx, nil, meta, false, models.FailureReasonNotFound)
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", creds.Email).Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(creds.Password, foundUser.PasswordHash) {
		log.Error().Int64("id", foundUser.UserID).Msg("login failed: wrong password")
		a.recordAttempt(ctx, &foundUser.UserID, meta, false, models.FailureReasonInvalidPassword)
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	if !foundUser.IsActive {
		log.Error().Int64("id", foundUser.UserID).Msg("login failed: account is inactive")
		a.recordAttempt(ctx, &foundUser.UserID, meta, false, models.FailureReasonInactive)
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	a.recordAttempt(ctx, &foundUser.UserID, meta, true, "")

	token, err := a.createToken(foundUser)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("token creation failed after login")
		return models.User{}, models.Token{}, err
	}

	return foundUser.Sanitized(), token, nil
}

// Authorize validates and parses a raw JWT string and resolves the account
// it was issued for.
//
// Any token validation failure (expired, wrong issuer, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors. The account's active flag is deliberately
// not rechecked here: a session issued before deactivation stays valid until
// it expires.
func (a *authService) Authorize(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	userID, err := token.GetUserID()
	if err != nil {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("token subject lookup failed")
		return models.User{}, fmt.Errorf("token subject lookup failed: %w", err)
	}

	return foundUser.Sanitized(), nil
}

// RequireRole returns ErrAccessDenied unless the user holds the given role.
func (a *authService) RequireRole(user models.User, role string) error {
	if user.Role != role {
		return ErrAccessDenied
	}

	return nil
}

// FindUser returns the sanitized account record for the given id.
//
// Returns a wrapped store.ErrNoUserWasFound when the account does not exist.
func (a *authService) FindUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser.Sanitized(), nil
}

// UpdateProfile applies a partial profile change and returns the updated
// sanitized account.
//
// A changed email is trimmed and lowercased first. Returns:
//   - ErrInvalidDataProvided when a field fails validation.
//   - A wrapped store.ErrEmailAlreadyExists when the new email belongs to
//     another account.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, update); err != nil {
		log.Error().Int64("id", userID).Err(err).Msg("invalid profile update provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if update.Email != nil {
		normalized := normalizeEmail(*update.Email)
		update.Email = &normalized
	}

	updatedUser, err := a.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile update ended with error")
		return models.User{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	return updatedUser.Sanitized(), nil
}

// ChangePassword verifies the current password and replaces it with a new
// one.
//
// Returns:
//   - ErrPasswordConfirmMismatch when the confirmation differs.
//   - ErrInvalidDataProvided when the new password fails validation.
//   - ErrWrongPassword when the current password does not verify.
//   - ErrSamePassword when the new password equals the current one.
func (a *authService) ChangePassword(ctx context.Context, userID int64, change models.PasswordChange) error {
	log := logger.FromContext(ctx)

	if change.NewPassword != change.ConfirmPassword {
		return ErrPasswordConfirmMismatch
	}

	if err := a.validator.Validate(ctx, validators.RegistrationInput{Password: change.NewPassword}, validators.FieldPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !a.hasher.Verify(change.CurrentPassword, foundUser.PasswordHash) {
		log.Error().Int64("id", userID).Msg("password change rejected: wrong current password")
		return ErrWrongPassword
	}

	if change.NewPassword == change.CurrentPassword {
		return ErrSamePassword
	}

	passwordHash, err := a.hasher.Hash(change.NewPassword)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("password hashing ended with error")
		return fmt.Errorf("password hashing ended with error: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, passwordHash); err != nil {
		log.Err(err).Int64("id", userID).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	return nil
}

// ListUsers returns every account, newest first, with credentials stripped.
// Role gating happens at the handler.
func (a *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := a.userRepository.ListUsers(ctx)
	if err != nil {
		log.Err(err).Msg("user listing ended with error")
		return nil, fmt.Errorf("user listing ended with error: %w", err)
	}

	for i := range users {
		users[i] = users[i].Sanitized()
	}

	return users, nil
}

// ListLoginAttempts returns the audit records for one account, newest first.
func (a *authService) ListLoginAttempts(ctx context.Context, userID int64) ([]models.LoginAttempt, error) {
	log := logger.FromContext(ctx)

	attempts, err := a.attemptRepository.FindAttemptsByUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("login attempt listing ended with error")
		return nil, fmt.Errorf("login attempt listing ended with error: %w", err)
	}

	return attempts, nil
}

// createToken issues a signed JWT carrying the user's id and email.
func (a *authService) createToken(user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// recordAttempt appends one audit record; a failed write is logged and
// swallowed so it never changes the login outcome.
func (a *authService) recordAttempt(ctx context.Context, userID *int64, meta models.ClientMeta, successful bool, reason string) {
	attempt := models.LoginAttempt{
		UserID:        userID,
		Platform:      meta.Platform,
		IPAddress:     meta.IPAddress,
		UserAgent:     meta.UserAgent,
		IsSuccessful:  successful,
		FailureReason: reason,
	}

	if _, err := a.attemptRepository.CreateAttempt(ctx, attempt); err != nil {
		logger.FromContext(ctx).Err(err).
			Bool("successful", successful).
			Str("reason", reason).
			Msg("login attempt was not recorded")
	}
}

// normalizeEmail trims surrounding whitespace and lowercases the address so
// identical mailboxes always map to one account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
