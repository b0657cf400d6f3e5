package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/MKhiriev/go-card-share/models"
)

// loginAttemptRepository is the PostgreSQL-backed implementation of
// [LoginAttemptRepository]. The "login_attempts" table is append-only:
// this repository exposes no update or delete operations at all.
type loginAttemptRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLoginAttemptRepository constructs a [LoginAttemptRepository] backed by
// the provided database connection and logger.
func NewLoginAttemptRepository(db *DB, logger *logger.Logger) LoginAttemptRepository {
	logger.Debug().Msg("creating login attempt repository")
	return &loginAttemptRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAttempt appends one audit record and returns it with server-assigned
// fields (AttemptID, CreatedAt). A nil UserID is stored as NULL for attempts
// whose email matched no account.
func (r *loginAttemptRepository) CreateAttempt(ctx context.Context, attempt models.LoginAttempt) (models.LoginAttempt, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createLoginAttempt,
		attempt.UserID, attempt.Platform, attempt.IPAddress, attempt.UserAgent,
		attempt.IsSuccessful, attempt.FailureReason)

	var created models.LoginAttempt
	if err := row.Scan(&created.AttemptID, &created.UserID, &created.Platform, &created.IPAddress,
		&created.UserAgent, &created.IsSuccessful, &created.FailureReason, &created.CreatedAt); err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.CreateAttempt").Msg("error: attempt insert failed")
		return models.LoginAttempt{}, fmt.Errorf("%w: %w", ErrAttemptNotSaved, err)
	}

	return created, nil
}

// FindAttemptsByUser returns the audit records for one account, newest first.
func (r *loginAttemptRepository) FindAttemptsByUser(ctx context.Context, userID int64) ([]models.LoginAttempt, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findAttemptsByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*loginAttemptRepository.FindAttemptsByUser").Msg("error: attempts query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var attempts []models.LoginAttempt
	for rows.Next() {
		var a models.LoginAttempt
		if err := rows.Scan(&a.AttemptID, &a.UserID, &a.Platform, &a.IPAddress,
			&a.UserAgent, &a.IsSuccessful, &a.FailureReason, &a.CreatedAt); err != nil {
			log.Err(err).Str("func", "*loginAttemptRepository.FindAttemptsByUser").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return attempts, nil
}
