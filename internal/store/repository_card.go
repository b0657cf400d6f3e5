package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/MKhiriev/go-card-share/models"
	"github.com/jackc/pgerrcode"
)

// cardRepository is the PostgreSQL-backed implementation of [CardRepository].
// Links are stored as a jsonb column; the share-code payload as bytea.
//
// Soft deletion is modelled with the is_active flag: only FindCardByID
// ignores it, because ownership checks must still resolve deleted records.
type cardRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCardRepository constructs a [CardRepository] backed by the provided
// database connection and logger.
func NewCardRepository(db *DB, logger *logger.Logger) CardRepository {
	logger.Debug().Msg("creating card repository")
	return &cardRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanCard.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (models.Card, error) {
	var card models.Card
	var linksJSON []byte

	err := row.Scan(&card.CardID, &card.OwnerID, &card.ShareID, &card.CardName, &card.OwnerName,
		&card.AvatarPath, &card.CoverPath, &card.ThemeColor, &card.ThemeIcon, &linksJSON,
		&card.Address, &card.Company, &card.Description, &card.Phone, &card.Email,
		&card.ShareCode, &card.IsActive, &card.ViewCount, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return models.Card{}, err
	}

	if len(linksJSON) > 0 {
		if err := json.Unmarshal(linksJSON, &card.Links); err != nil {
			return models.Card{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	return card, nil
}

// CreateCard persists a new card and returns it with server-assigned fields.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrShareIDAlreadyExists]
//     (the only unique constraint on the table is the share identifier).
//   - Any other error → wrapped as "unexpected DB error".
func (r *cardRepository) CreateCard(ctx context.Context, card models.Card) (models.Card, error) {
	log := logger.FromContext(ctx)

	linksJSON, err := json.Marshal(card.Links)
	if err != nil {
		return models.Card{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, createCard,
		card.OwnerID, card.ShareID, card.CardName, card.OwnerName, card.AvatarPath, card.CoverPath,
		card.ThemeColor, card.ThemeIcon, linksJSON,
		card.Address, card.Company, card.Description, card.Phone, card.Email)

	created, err := scanCard(row)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.CreateCard").Msg("error: card insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Card{}, ErrShareIDAlreadyExists
		default:
			return models.Card{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindCardByID returns the card with the given internal id regardless of its
// soft-delete state, so that ownership checks can resolve deleted records.
//
// Returns [ErrCardNotFound] when no record exists.
func (r *cardRepository) FindCardByID(ctx context.Context, cardID int64) (models.Card, error) {
	return r.findOne(ctx, findCardByID, cardID)
}

// FindCardByShareID returns the active card addressed by the public share
// identifier. Soft-deleted cards are reported as [ErrCardNotFound].
func (r *cardRepository) FindCardByShareID(ctx context.Context, shareID string) (models.Card, error) {
	return r.findOne(ctx, findCardByShareID, shareID)
}

func (r *cardRepository) findOne(ctx context.Context, query string, arg any) (models.Card, error) {
	log := logger.FromContext(ctx)

	card, err := scanCard(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Card{}, ErrCardNotFound
		}

		log.Err(err).Str("func", "*cardRepository.findOne").Msg("error: card lookup failed")
		return models.Card{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return card, nil
}

// FindCardsByOwner returns the owner's active cards, newest first.
func (r *cardRepository) FindCardsByOwner(ctx context.Context, ownerID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findCardsByOwner, ownerID)
	if err != nil {
		log.Err(err).Str("func", "*cardRepository.FindCardsByOwner").Msg("error: cards query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Err(err).Str("func", "*cardRepository.FindCardsByOwner").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return cards, nil
}

// UpdateCard applies a partial change built with squirrel: every non-nil
// field of update becomes its own SET clause, so concurrent updates that
// touch different fields both survive. Returns the updated record.
//
// Returns [ErrCardNotFound] when the card does not exist.
func (r *cardRepository) UpdateCard(ctx context.Context, cardID int64, update models.CardUpdate) (models.Card, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCardUpdateQuery(cardID, update)
	if err != nil {
		return models.Card{}, err
	}

	updated, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Card{}, ErrCardNotFound
		}

		log.Err(err).Str("func", "*cardRepository.UpdateCard").Msg("error: card update failed")
		return models.Card{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// SetShareCode overwrites the stored share-code payload.
//
// Returns [ErrCardNotFound] when the UPDATE affects zero rows.
func (r *cardRepository) SetShareCode(ctx context.Context, cardID int64, payload []byte) error {
	return r.exec(ctx, "*cardRepository.SetShareCode", setCardShareCode, payload, cardID)
}

// IncrementViewCount atomically adds one to the visit counter inside the
// database and returns the new value. Concurrent increments are serialized
// by the row lock of the UPDATE itself.
//
// A failure classified as transient (connection loss, deadlock rollback) is
// retried once before giving up.
func (r *cardRepository) IncrementViewCount(ctx context.Context, cardID int64) (int64, error) {
	log := logger.FromContext(ctx)

	count, err := r.incrementViewCount(ctx, cardID)
	if err != nil && r.db.errorClassificator.Classify(err) == Retryable {
		log.Warn().Err(err).Str("func", "*cardRepository.IncrementViewCount").Msg("retrying view count update after transient failure")
		count, err = r.incrementViewCount(ctx, cardID)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCardNotFound
		}

		log.Err(err).Str("func", "*cardRepository.IncrementViewCount").Msg("error: view count update failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return count, nil
}

func (r *cardRepository) incrementViewCount(ctx context.Context, cardID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, incrementCardViews, cardID).Scan(&count)
	return count, err
}

// SetActive flips the soft-delete marker. Re-applying the current value is
// a successful no-op.
//
// Returns [ErrCardNotFound] when the UPDATE affects zero rows.
func (r *cardRepository) SetActive(ctx context.Context, cardID int64, active bool) error {
	return r.exec(ctx, "*cardRepository.SetActive", setCardActive, active, cardID)
}

func (r *cardRepository) exec(ctx context.Context, caller, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", caller).Msg("error: statement failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCardNotFound
	}

	return nil
}
