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
	"github.com/MKhiriev/go-card-share/internal/validators"
	"github.com/MKhiriev/go-card-share/models"
)

// createShareIDAttempts bounds the retry loop taken when a freshly generated
// share identifier collides with an existing one.
const createShareIDAttempts = 3

// cardService is the concrete implementation of CardService.
type cardService struct {
	// cardRepository is the data-access layer for card records.
	cardRepository store.CardRepository

	// blobStore keeps avatar and cover images outside the database.
	blobStore store.BlobStore

	// encoder renders the card's public URL into a scannable code payload.
	encoder CodeEncoder

	// shareIDs produces the public share identifiers assigned at creation.
	shareIDs ShareIDGenerator

	// validator checks card fields and partial updates.
	validator validators.Validator

	// publicURL is the base address encoded into share codes; the card's
	// internal id is appended to it.
	publicURL string

	// fileBaseURL is prefixed onto relative asset paths on every read.
	fileBaseURL string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewCardService constructs a CardService wired to the given repositories and
// collaborators.
func NewCardService(cardRepository store.CardRepository, blobStore store.BlobStore, encoder CodeEncoder, shareIDs ShareIDGenerator, cfg config.Cards, logger *logger.Logger) CardService {
	return &cardService{
		cardRepository: cardRepository,
		blobStore:      blobStore,
		encoder:        encoder,
		shareIDs:       shareIDs,
		validator:      validators.NewCardValidator(),
		publicURL:      cfg.PublicURL,
		fileBaseURL:    cfg.FileBaseURL,
		logger:         logger,
	}
}

// Create persists a new card for ownerID and generates its share code.
//
// Image assets, when present, are written to the blob store before the card
// row is inserted. The share code is produced after insertion as a second
// write: an encoder failure is logged and leaves the payload empty, it never
// fails the creation. A share-identifier collision is retried with a fresh
// identifier.
//
// Returns the created card with asset paths rewritten to absolute URLs, or:
//   - ErrInvalidDataProvided when a field fails validation.
//   - A wrapped store or blob-store error otherwise.
func (c *cardService) Create(ctx context.Context, ownerID int64, card models.Card, assets models.CardAssets) (models.Card, error) {
	log := logger.FromContext(ctx)

	if err := c.validator.Validate(ctx, card); err != nil {
		log.Error().Int64("owner_id", ownerID).Err(err).Msg("invalid card data provided")
		return models.Card{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	card.OwnerID = ownerID
	card.IsActive = true
	card.ShareCode = nil
	card.ViewCount = 0

	if assets.Avatar != nil {
		key, err := c.saveAsset(ctx, assets.Avatar)
		if err != nil {
			return models.Card{}, err
		}
		card.AvatarPath = key
	}
	if assets.Cover != nil {
		key, err := c.saveAsset(ctx, assets.Cover)
		if err != nil {
			return models.Card{}, err
		}
		card.CoverPath = key
	}

	var created models.Card
	for attempt := 0; ; attempt++ {
		card.ShareID = c.shareIDs.Generate()

		var err error
		created, err = c.cardRepository.CreateCard(ctx, card)
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrShareIDAlreadyExists) && attempt+1 < createShareIDAttempts {
			log.Error().Str("share_id", card.ShareID).Msg("share identifier collision, retrying")
			continue
		}

		log.Err(err).Int64("owner_id", ownerID).Msg("card creation ended with error")
		return models.Card{}, fmt.Errorf("card creation ended with error: %w", err)
	}

	created.ShareCode = c.refreshShareCode(ctx, created.CardID)

	return created.Transformed(c.fileBaseURL), nil
}

// FindAllForOwner returns the owner's active cards, newest first, with asset
// paths rewritten to absolute URLs.
func (c *cardService) FindAllForOwner(ctx context.Context, ownerID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	cards, err := c.cardRepository.FindCardsByOwner(ctx, ownerID)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("card listing ended with error")
		return nil, fmt.Errorf("card listing ended with error: %w", err)
	}

	for i := range cards {
		cards[i] = cards[i].Transformed(c.fileBaseURL)
	}

	return cards, nil
}

// FindOne returns one card by internal id.
//
// requesterID is nil for anonymous readers. Any read by someone other than
// the owner counts as a visit: the view counter is incremented atomically in
// the store before the card is returned, and concurrent visits may be
// undercounted. A soft-deleted card is reported as not found to everyone but
// its owner.
func (c *cardService) FindOne(ctx context.Context, cardID int64, requesterID *int64) (models.Card, error) {
	log := logger.FromContext(ctx)

	card, err := c.cardRepository.FindCardByID(ctx, cardID)
	if err != nil {
		log.Err(err).Int64("card_id", cardID).Msg("card search by id failed")
		return models.Card{}, fmt.Errorf("card search by id failed: %w", err)
	}

	isOwner := requesterID != nil && *requesterID == card.OwnerID

	if !card.IsActive && !isOwner {
		return models.Card{}, fmt.Errorf("card search by id failed: %w", store.ErrCardNotFound)
	}

	if !isOwner {
		card.ViewCount = c.countVisit(ctx, card)
	}

	return card.Transformed(c.fileBaseURL), nil
}

// FindByShareID is the public lookup by the stable share identifier. It
// always counts as an anonymous visit. Soft-deleted cards are reported as
// not found.
func (c *cardService) FindByShareID(ctx context.Context, shareID string) (models.Card, error) {
	log := logger.FromContext(ctx)

	card, err := c.cardRepository.FindCardByShareID(ctx, shareID)
	if err != nil {
		log.Err(err).Str("share_id", shareID).Msg("card search by share id failed")
		return models.Card{}, fmt.Errorf("card search by share id failed: %w", err)
	}

	card.ViewCount = c.countVisit(ctx, card)

	return card.Transformed(c.fileBaseURL), nil
}

// Update applies a partial change to one of the requester's cards.
//
// Each replaced image asset deletes the previous blob first (best-effort,
// logged) and attaches the new storage key. Non-nil update fields become
// individual SET clauses in the store, so concurrent updates collide per
// field rather than per record.
//
// Returns the updated card, or:
//   - A wrapped store.ErrCardNotFound when the card is absent or deleted.
//   - ErrAccessDenied when the requester does not own the card.
//   - ErrInvalidDataProvided when an update field fails validation.
func (c *cardService) Update(ctx context.Context, cardID int64, requesterID int64, update models.CardUpdate, assets models.CardAssets) (models.Card, error) {
	log := logger.FromContext(ctx)

	if err := c.validator.Validate(ctx, update); err != nil {
		log.Error().Int64("card_id", cardID).Err(err).Msg("invalid card update provided")
		return models.Card{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	existing, err := c.ownedCard(ctx, cardID, requesterID)
	if err != nil {
		return models.Card{}, err
	}
	if !existing.IsActive {
		return models.Card{}, fmt.Errorf("card search by id failed: %w", store.ErrCardNotFound)
	}

	if assets.Avatar != nil {
		c.deleteBlob(ctx, existing.AvatarPath)
		key, err := c.saveAsset(ctx, assets.Avatar)
		if err != nil {
			return models.Card{}, err
		}
		update.AvatarPath = &key
	}
	if assets.Cover != nil {
		c.deleteBlob(ctx, existing.CoverPath)
		key, err := c.saveAsset(ctx, assets.Cover)
		if err != nil {
			return models.Card{}, err
		}
		update.CoverPath = &key
	}

	updated, err := c.cardRepository.UpdateCard(ctx, cardID, update)
	if err != nil {
		log.Err(err).Int64("card_id", cardID).Msg("card update ended with error")
		return models.Card{}, fmt.Errorf("card update ended with error: %w", err)
	}

	return updated.Transformed(c.fileBaseURL), nil
}

// Remove soft-deletes one of the requester's cards.
//
// Both image blobs are deleted best-effort before the card is marked
// inactive; the record itself is kept. Removing an already-removed card
// succeeds again — the operation is idempotent.
//
// Returns a wrapped store.ErrCardNotFound when the card is absent, or
// ErrAccessDenied when the requester does not own it.
func (c *cardService) Remove(ctx context.Context, cardID int64, requesterID int64) error {
	log := logger.FromContext(ctx)

	existing, err := c.ownedCard(ctx, cardID, requesterID)
	if err != nil {
		return err
	}

	c.deleteBlob(ctx, existing.AvatarPath)
	c.deleteBlob(ctx, existing.CoverPath)

	if err := c.cardRepository.SetActive(ctx, cardID, false); err != nil {
		log.Err(err).Int64("card_id", cardID).Msg("card removal ended with error")
		return fmt.Errorf("card removal ended with error: %w", err)
	}

	return nil
}

// RegenerateShareCode recomputes the scannable code for one of the
// requester's cards and overwrites the stored payload. The share identifier
// itself never changes.
//
// Returns the card carrying the fresh payload, or a wrapped
// store.ErrCardNotFound / ErrAccessDenied like Update.
func (c *cardService) RegenerateShareCode(ctx context.Context, cardID int64, requesterID int64) (models.Card, error) {
	existing, err := c.ownedCard(ctx, cardID, requesterID)
	if err != nil {
		return models.Card{}, err
	}
	if !existing.IsActive {
		return models.Card{}, fmt.Errorf("card search by id failed: %w", store.ErrCardNotFound)
	}

	existing.ShareCode = c.refreshShareCode(ctx, cardID)

	return existing.Transformed(c.fileBaseURL), nil
}

// ownedCard fetches a card regardless of its soft-delete state and checks
// that requesterID owns it.
func (c *cardService) ownedCard(ctx context.Context, cardID int64, requesterID int64) (models.Card, error) {
	log := logger.FromContext(ctx)

	card, err := c.cardRepository.FindCardByID(ctx, cardID)
	if err != nil {
		log.Err(err).Int64("card_id", cardID).Msg("card search by id failed")
		return models.Card{}, fmt.Errorf("card search by id failed: %w", err)
	}

	if card.OwnerID != requesterID {
		log.Error().
			Int64("card_id", cardID).
			Int64("owner_id", card.OwnerID).
			Int64("requester_id", requesterID).
			Msg("card access denied")
		return models.Card{}, ErrAccessDenied
	}

	return card, nil
}

// refreshShareCode encodes the card's public URL and persists the payload.
// Both the encoding and the write are best-effort: a failure is logged and
// an empty payload is returned, the surrounding operation still succeeds.
func (c *cardService) refreshShareCode(ctx context.Context, cardID int64) []byte {
	log := logger.FromContext(ctx)

	payload, err := c.encoder.Encode(publicCardURL(c.publicURL, cardID))
	if err != nil {
		log.Err(err).Int64("card_id", cardID).Msg("share code encoding failed")
		payload = nil
	}

	if err := c.cardRepository.SetShareCode(ctx, cardID, payload); err != nil {
		log.Err(err).Int64("card_id", cardID).Msg("share code was not persisted")
		return nil
	}

	return payload
}

// saveAsset writes one uploaded image to the blob store under a fresh
// year/month-partitioned key and returns that key.
func (c *cardService) saveAsset(ctx context.Context, upload *models.FileUpload) (string, error) {
	log := logger.FromContext(ctx)

	key := c.assetKey(upload.Ext)
	if err := c.blobStore.Save(ctx, key, upload.Data, upload.ContentType); err != nil {
		log.Err(err).Str("key", key).Msg("asset upload ended with error")
		return "", fmt.Errorf("asset upload ended with error: %w", err)
	}

	return key, nil
}

// deleteBlob removes a stored asset best-effort: failures are logged, never
// propagated, since an orphaned blob is preferable to a failed operation.
func (c *cardService) deleteBlob(ctx context.Context, key string) {
	if key == "" {
		return
	}

	if err := c.blobStore.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Err(err).Str("key", key).Msg("asset deletion failed")
	}
}

// countVisit increments the card's view counter; a failed increment is
// logged and the stale value is served.
func (c *cardService) countVisit(ctx context.Context, card models.Card) int64 {
	count, err := c.cardRepository.IncrementViewCount(ctx, card.CardID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("card_id", card.CardID).Msg("view count increment failed")
		return card.ViewCount
	}

	return count
}

// assetKey builds a relative blob key of the form
// cards/<year>/<month>/<uuid><ext>.
func (c *cardService) assetKey(ext string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("cards/%d/%02d/%s%s", now.Year(), int(now.Month()), c.shareIDs.Generate(), ext)
}

// publicCardURL joins the configured public base with the card's internal id.
func publicCardURL(base string, cardID int64) string {
	return fmt.Sprintf("%s/%d", strings.TrimRight(base, "/"), cardID)
}
