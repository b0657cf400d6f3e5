package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-card-share/internal/app"
	"github.com/MKhiriev/go-card-share/internal/utils"
	"github.com/MKhiriev/go-card-share/models"
	"github.com/go-chi/chi/v5"
)

// Multipart limits for card image uploads.
const (
	maxAvatarSize = 2 << 20 // 2 MiB
	maxCoverSize  = 5 << 20 // 5 MiB

	// maxFormMemory bounds the in-memory portion of multipart parsing;
	// larger parts spill to temporary files.
	maxFormMemory = 8 << 20

	// cardFormField is the multipart field carrying the card JSON document.
	cardFormField = "card"

	avatarFormField = "avatar"
	coverFormField  = "cover"
)

// assetExtensions maps the accepted image content types to the storage key
// extension. Any other declared type is rejected.
var assetExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (h *Handler) createCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var card models.Card
	assets, err := h.parseCardForm(r, &card)
	if err != nil {
		h.writeError(w, r, err, app.MsgInvalidCardForm)
		return
	}

	created, err := h.services.CardService.Create(ctx, userID, card, assets)
	if err != nil {
		h.writeError(w, r, err, app.MsgCardCreationFailed)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	cards, err := h.services.CardService.FindAllForOwner(ctx, userID)
	if err != nil {
		h.writeError(w, r, err, app.MsgCardListingFailed)
		return
	}

	utils.WriteJSON(w, cards, http.StatusOK)
}

// card serves the public card view. The route runs behind authOptional, so
// a requester carrying a valid token is recognized and an owner's read is
// not counted as a visit.
func (h *Handler) card(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cardID, err := cardIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	var requesterID *int64
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		requesterID = &userID
	}

	foundCard, err := h.services.CardService.FindOne(ctx, cardID, requesterID)
	if err != nil {
		h.writeError(w, r, err, app.MsgCardLookupFailed)
		return
	}

	utils.WriteJSON(w, foundCard, http.StatusOK)
}

// sharedCard serves the public lookup by the stable share identifier.
func (h *Handler) sharedCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shareID := chi.URLParam(r, "shareID")
	if shareID == "" {
		http.Error(w, "invalid share id", http.StatusBadRequest)
		return
	}

	foundCard, err := h.services.CardService.FindByShareID(ctx, shareID)
	if err != nil {
		h.writeError(w, r, err, app.MsgCardLookupFailed)
		return
	}

	utils.WriteJSON(w, foundCard, http.StatusOK)
}

func (h *Handler) updateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	cardID, err := cardIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	var update models.CardUpdate
	assets, err := h.parseCardForm(r, &update)
	if err != nil {
		h.writeError(w, r, err, app.MsgInvalidCardForm)
		return
	}

	updated, err := h.services.CardService.Update(ctx, cardID, userID, update, assets)
	if err != nil {
		h.writeError(w, r, err, app.MsgCardUpdateFailed)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	cardID, err := cardIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	if err := h.services.CardService.Remove(ctx, cardID, userID); err != nil {
		h.writeError(w, r, err, app.MsgCardRemovalFailed)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "card removed"}, http.StatusOK)
}

func (h *Handler) regenerateShareCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	cardID, err := cardIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	refreshed, err := h.services.CardService.RegenerateShareCode(ctx, cardID, userID)
	if err != nil {
		h.writeError(w, r, err, app.MsgShareCodeFailed)
		return
	}

	utils.WriteJSON(w, refreshed, http.StatusOK)
}

// parseCardForm decodes a multipart card request: the JSON document from the
// "card" field into dest, plus the optional avatar and cover image parts.
func (h *Handler) parseCardForm(r *http.Request, dest any) (models.CardAssets, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return models.CardAssets{}, errors.New("invalid multipart form")
	}

	if raw := r.FormValue(cardFormField); raw != "" {
		if err := json.Unmarshal([]byte(raw), dest); err != nil {
			return models.CardAssets{}, errors.New("invalid card JSON")
		}
	}

	avatar, err := readAsset(r, avatarFormField, maxAvatarSize)
	if err != nil {
		return models.CardAssets{}, err
	}

	cover, err := readAsset(r, coverFormField, maxCoverSize)
	if err != nil {
		return models.CardAssets{}, err
	}

	return models.CardAssets{Avatar: avatar, Cover: cover}, nil
}

// readAsset extracts one optional image part, enforcing the per-asset size
// limit and the accepted content types. A missing part returns (nil, nil).
func readAsset(r *http.Request, field string, maxSize int64) (*models.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if header.Size > maxSize {
		return nil, ErrAssetTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := assetExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedAssetType
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, ErrAssetTooLarge
	}

	return &models.FileUpload{Data: data, ContentType: contentType, Ext: ext}, nil
}

// cardIDFromURL parses the {id} route parameter.
func cardIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
