// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/MKhiriev/go-card-share/internal/mock"
	"github.com/MKhiriev/go-card-share/internal/store"
	"github.com/MKhiriev/go-card-share/internal/validators"
	"github.com/MKhiriev/go-card-share/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testPublicURL   = "https://cards.example.com/c"
	testFileBaseURL = "https://files.example.com"
)

// newTestCardService builds a bare *cardService around gomock collaborators.
func newTestCardService(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*cardService,
	*mock.MockCardRepository,
	*mock.MockBlobStore,
	*mock.MockCodeEncoder,
	*mock.MockShareIDGenerator,
) {
	t.Helper()
	mockCards := mock.NewMockCardRepository(ctrl)
	mockBlobs := mock.NewMockBlobStore(ctrl)
	mockEncoder := mock.NewMockCodeEncoder(ctrl)
	mockIDs := mock.NewMockShareIDGenerator(ctrl)

	svc := &cardService{
		cardRepository: mockCards,
		blobStore:      mockBlobs,
		encoder:        mockEncoder,
		shareIDs:       mockIDs,
		validator:      validators.NewCardValidator(),
		publicURL:      testPublicURL,
		fileBaseURL:    testFileBaseURL,
		logger:         logger.Nop(),
	}

	return svc, mockCards, mockBlobs, mockEncoder, mockIDs
}

func validCard() models.Card {
	return models.Card{
		CardName:  "Work",
		OwnerName: "Jamie Doe",
		Links: []models.CardLink{
			{Title: "Site", URL: "https://example.com"},
		},
	}
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestCardService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, mockEncoder, mockIDs := newTestCardService(t, ctrl)
	ctx := context.Background()

	png := []byte{0x89, 'P', 'N', 'G'}

	mockIDs.EXPECT().Generate().Return("share-1")
	mockCards.EXPECT().CreateCard(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, card models.Card) (models.Card, error) {
			assert.Equal(t, int64(7), card.OwnerID)
			assert.Equal(t, "share-1", card.ShareID)
			assert.True(t, card.IsActive)
			assert.Empty(t, card.ShareCode)
			card.CardID = 42
			return card, nil
		},
	)
	mockEncoder.EXPECT().Encode(testPublicURL+"/42").Return(png, nil)
	mockCards.EXPECT().SetShareCode(ctx, int64(42), png).Return(nil)

	created, err := svc.Create(ctx, 7, validCard(), models.CardAssets{})
	require.NoError(t, err)

	assert.Equal(t, int64(42), created.CardID)
	assert.Equal(t, png, created.ShareCode)
}

func TestCardService_Create_EncoderFailureStillSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, mockEncoder, mockIDs := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockIDs.EXPECT().Generate().Return("share-1")
	mockCards.EXPECT().CreateCard(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, card models.Card) (models.Card, error) {
			card.CardID = 42
			return card, nil
		},
	)
	mockEncoder.EXPECT().Encode(gomock.Any()).Return(nil, errStorage)
	mockCards.EXPECT().SetShareCode(ctx, int64(42), nil).Return(nil)

	created, err := svc.Create(ctx, 7, validCard(), models.CardAssets{})

	require.NoError(t, err, "an encoding failure must not fail the creation")
	assert.Empty(t, created.ShareCode)
}

func TestCardService_Create_ShareIDCollisionRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, mockEncoder, mockIDs := newTestCardService(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockIDs.EXPECT().Generate().Return("share-1"),
		mockCards.EXPECT().CreateCard(ctx, gomock.Any()).Return(models.Card{}, store.ErrShareIDAlreadyExists),
		mockIDs.EXPECT().Generate().Return("share-2"),
		mockCards.EXPECT().CreateCard(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, card models.Card) (models.Card, error) {
				assert.Equal(t, "share-2", card.ShareID)
				card.CardID = 42
				return card, nil
			},
		),
	)
	mockEncoder.EXPECT().Encode(gomock.Any()).Return([]byte("png"), nil)
	mockCards.EXPECT().SetShareCode(ctx, int64(42), []byte("png")).Return(nil)

	created, err := svc.Create(ctx, 7, validCard(), models.CardAssets{})

	require.NoError(t, err)
	assert.Equal(t, "share-2", created.ShareID)
}

func TestCardService_Create_WithAvatar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, mockBlobs, mockEncoder, mockIDs := newTestCardService(t, ctrl)
	ctx := context.Background()

	avatar := &models.FileUpload{Data: []byte("image-bytes"), ContentType: "image/png", Ext: ".png"}

	gomock.InOrder(
		mockIDs.EXPECT().Generate().Return("asset-uuid"),
		mockBlobs.EXPECT().Save(ctx, gomock.Any(), avatar.Data, "image/png").DoAndReturn(
			func(_ context.Context, key string, _ []byte, _ string) error {
				assert.True(t, strings.HasPrefix(key, "cards/"), "asset keys are partitioned under cards/")
				assert.True(t, strings.HasSuffix(key, "asset-uuid.png"))
				return nil
			},
		),
		mockIDs.EXPECT().Generate().Return("share-1"),
	)
	mockCards.EXPECT().CreateCard(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, card models.Card) (models.Card, error) {
			assert.NotEmpty(t, card.AvatarPath)
			card.CardID = 42
			return card, nil
		},
	)
	mockEncoder.EXPECT().Encode(gomock.Any()).Return([]byte("png"), nil)
	mockCards.EXPECT().SetShareCode(ctx, int64(42), []byte("png")).Return(nil)

	created, err := svc.Create(ctx, 7, validCard(), models.CardAssets{Avatar: avatar})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.AvatarPath, testFileBaseURL+"/"),
		"returned asset paths are rewritten to absolute URLs")
}

func TestCardService_Create_InvalidCard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestCardService(t, ctrl)

	_, err := svc.Create(context.Background(), 7, models.Card{OwnerName: "Jamie Doe"}, models.CardAssets{})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrEmptyCardName)
}

// ── Reads ────────────────────────────────────────────────────────────────────

func TestCardService_FindAllForOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardsByOwner(ctx, int64(7)).Return([]models.Card{
		{CardID: 2, OwnerID: 7, AvatarPath: "cards/2026/08/a.png", IsActive: true},
		{CardID: 1, OwnerID: 7, IsActive: true},
	}, nil)

	cards, err := svc.FindAllForOwner(ctx, 7)
	require.NoError(t, err)

	require.Len(t, cards, 2)
	assert.Equal(t, testFileBaseURL+"/cards/2026/08/a.png", cards[0].AvatarPath)
	assert.Empty(t, cards[1].AvatarPath, "absent assets stay absent")
}

func TestCardService_FindOne_OwnerReadDoesNotCountVisit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, IsActive: true, ViewCount: 5,
	}, nil)

	owner := int64(7)
	card, err := svc.FindOne(ctx, 42, &owner)
	require.NoError(t, err)

	assert.Equal(t, int64(5), card.ViewCount)
}

func TestCardService_FindOne_AnonymousReadCountsVisit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, IsActive: true, ViewCount: 5,
	}, nil)
	mockCards.EXPECT().IncrementViewCount(ctx, int64(42)).Return(int64(6), nil)

	card, err := svc.FindOne(ctx, 42, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(6), card.ViewCount)
}

func TestCardService_FindOne_DeletedHiddenFromNonOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, IsActive: false,
	}, nil)

	visitor := int64(9)
	_, err := svc.FindOne(ctx, 42, &visitor)

	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestCardService_FindByShareID_CountsVisit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByShareID(ctx, "share-1").Return(models.Card{
		CardID: 42, OwnerID: 7, ShareID: "share-1", IsActive: true, ViewCount: 5,
	}, nil)
	mockCards.EXPECT().IncrementViewCount(ctx, int64(42)).Return(int64(6), nil)

	card, err := svc.FindByShareID(ctx, "share-1")
	require.NoError(t, err)

	assert.Equal(t, int64(6), card.ViewCount)
}

func TestCardService_FindByShareID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByShareID(ctx, "gone").Return(models.Card{}, store.ErrCardNotFound)

	_, err := svc.FindByShareID(ctx, "gone")

	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestCardService_Update_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, IsActive: true,
	}, nil)

	_, err := svc.Update(ctx, 42, 9, models.CardUpdate{}, models.CardAssets{})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCardService_Update_ReplacesAvatar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, mockBlobs, _, mockIDs := newTestCardService(t, ctrl)
	ctx := context.Background()

	avatar := &models.FileUpload{Data: []byte("new-image"), ContentType: "image/webp", Ext: ".webp"}

	gomock.InOrder(
		mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
			CardID: 42, OwnerID: 7, IsActive: true, AvatarPath: "cards/2026/01/old.png",
		}, nil),
		mockBlobs.EXPECT().Delete(ctx, "cards/2026/01/old.png").Return(nil),
		mockIDs.EXPECT().Generate().Return("asset-uuid"),
		mockBlobs.EXPECT().Save(ctx, gomock.Any(), avatar.Data, "image/webp").Return(nil),
		mockCards.EXPECT().UpdateCard(ctx, int64(42), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, update models.CardUpdate) (models.Card, error) {
				require.NotNil(t, update.AvatarPath)
				assert.True(t, strings.HasSuffix(*update.AvatarPath, "asset-uuid.webp"))
				return models.Card{CardID: 42, OwnerID: 7, IsActive: true, AvatarPath: *update.AvatarPath}, nil
			},
		),
	)

	updated, err := svc.Update(ctx, 42, 7, models.CardUpdate{}, models.CardAssets{Avatar: avatar})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(updated.AvatarPath, testFileBaseURL+"/"))
}

func TestCardService_Update_OldBlobDeleteFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, mockBlobs, _, mockIDs := newTestCardService(t, ctrl)
	ctx := context.Background()

	avatar := &models.FileUpload{Data: []byte("new-image"), ContentType: "image/png", Ext: ".png"}

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, IsActive: true, AvatarPath: "cards/2026/01/old.png",
	}, nil)
	mockBlobs.EXPECT().Delete(ctx, "cards/2026/01/old.png").Return(errStorage)
	mockIDs.EXPECT().Generate().Return("asset-uuid")
	mockBlobs.EXPECT().Save(ctx, gomock.Any(), avatar.Data, "image/png").Return(nil)
	mockCards.EXPECT().UpdateCard(ctx, int64(42), gomock.Any()).Return(models.Card{CardID: 42, OwnerID: 7, IsActive: true}, nil)

	_, err := svc.Update(ctx, 42, 7, models.CardUpdate{}, models.CardAssets{Avatar: avatar})

	require.NoError(t, err, "a failed delete of the replaced blob must not fail the update")
}

func TestCardService_Update_DeletedCard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, IsActive: false,
	}, nil)

	_, err := svc.Update(ctx, 42, 7, models.CardUpdate{}, models.CardAssets{})

	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

// ── Remove ───────────────────────────────────────────────────────────────────

func TestCardService_Remove_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, mockBlobs, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, IsActive: true,
		AvatarPath: "cards/2026/01/a.png", CoverPath: "cards/2026/01/b.png",
	}, nil)
	mockBlobs.EXPECT().Delete(ctx, "cards/2026/01/a.png").Return(nil)
	mockBlobs.EXPECT().Delete(ctx, "cards/2026/01/b.png").Return(nil)
	mockCards.EXPECT().SetActive(ctx, int64(42), false).Return(nil)

	err := svc.Remove(ctx, 42, 7)

	require.NoError(t, err)
}

func TestCardService_Remove_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	// Already removed: no blobs left, re-applying the flag succeeds again.
	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, IsActive: false,
	}, nil)
	mockCards.EXPECT().SetActive(ctx, int64(42), false).Return(nil)

	err := svc.Remove(ctx, 42, 7)

	require.NoError(t, err)
}

func TestCardService_Remove_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{}, store.ErrCardNotFound)

	err := svc.Remove(ctx, 42, 7)

	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestCardService_Remove_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, IsActive: true,
	}, nil)

	err := svc.Remove(ctx, 42, 9)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

// ── RegenerateShareCode ──────────────────────────────────────────────────────

func TestCardService_RegenerateShareCode_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, mockEncoder, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	fresh := []byte("fresh-png")

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, ShareID: "share-1", IsActive: true, ShareCode: []byte("stale"),
	}, nil)
	mockEncoder.EXPECT().Encode(testPublicURL + "/42").Return(fresh, nil)
	mockCards.EXPECT().SetShareCode(ctx, int64(42), fresh).Return(nil)

	card, err := svc.RegenerateShareCode(ctx, 42, 7)
	require.NoError(t, err)

	assert.Equal(t, fresh, card.ShareCode)
	assert.Equal(t, "share-1", card.ShareID, "the share identifier never changes")
}

func TestCardService_RegenerateShareCode_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockCards, _, _, _ := newTestCardService(t, ctrl)
	ctx := context.Background()

	mockCards.EXPECT().FindCardByID(ctx, int64(42)).Return(models.Card{
		CardID: 42, OwnerID: 7, IsActive: true,
	}, nil)

	_, err := svc.RegenerateShareCode(ctx, 42, 9)

	assert.ErrorIs(t, err, ErrAccessDenied)
}
