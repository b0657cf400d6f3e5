package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/MKhiriev/go-card-share/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and self-service mutation against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (UserID, Role, timestamps).
//
// The INSERT computes the role itself: admin for the very first account,
// user otherwise. When two first registrations race, both can see an empty
// table, so the partial unique index on the admin role rejects the second
// one; that loser is re-inserted as a regular user.
//
// Error handling:
//   - unique violation on the admin index → retried with the user role.
//   - PostgreSQL unique_violation (23505) on email → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	created, err := r.insertUser(ctx, createUser, user)
	if err != nil && postgresConstraint(err) == singleAdminConstraint {
		log.Warn().Str("func", "*userRepository.CreateUser").Msg("lost the bootstrap admin race, inserting as regular user")
		created, err = r.insertUser(ctx, createUserAsRegular, user)
	}

	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: user insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		case "":
			return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

func (r *userRepository) insertUser(ctx context.Context, query string, user models.User) (models.User, error) {
	row := r.db.QueryRowContext(ctx, query, user.Email, user.Name, user.PasswordHash)

	var created models.User
	err := row.Scan(&created.UserID, &created.Email, &created.Name, &created.PasswordHash,
		&created.Role, &created.IsActive, &created.CreatedAt, &created.UpdatedAt)
	return created, err
}

// FindUserByEmail retrieves the account whose email matches the given value.
// The caller is responsible for normalizing the email beforehand.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Any other error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, findUserByEmail, email)
}

// FindUserByID retrieves the account with the given internal identifier.
//
// Error handling mirrors [userRepository.FindUserByEmail].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, findUserByID, userID)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&found.UserID, &found.Email, &found.Name, &found.PasswordHash,
		&found.Role, &found.IsActive, &found.CreatedAt, &found.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.findOne").Msg("error: user lookup failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// UpdateUser applies a partial profile change built with squirrel: only the
// non-nil fields of update produce SET clauses.
//
// Error handling:
//   - no fields in update → [ErrNoFieldsToUpdate].
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
func (r *userRepository) UpdateUser(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUserUpdateQuery(userID, update)
	if err != nil {
		return models.User{}, err
	}

	var updated models.User
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Scan(&updated.UserID, &updated.Email, &updated.Name, &updated.PasswordHash,
		&updated.Role, &updated.IsActive, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: user update failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return updated, nil
}

// UpdatePassword replaces the stored bcrypt digest for the given account.
//
// Returns [ErrNoUserWasFound] when the UPDATE affects zero rows.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserPassword, passwordHash, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: password update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// ListUsers returns every account, newest first.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: users query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UserID, &u.Email, &u.Name, &u.PasswordHash,
			&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}
