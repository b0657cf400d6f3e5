package validators

import (
	"context"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-card-share/models"
)

const (
	FieldCardName = "card_name"
	FieldLinks    = "links"
)

// CardValidator checks card creation and update input before it reaches the
// card service.
type CardValidator struct {
}

func NewCardValidator() Validator {
	return &CardValidator{}
}

func (v *CardValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Card:
		return v.validateCard(value)
	case *models.Card:
		return v.validateCard(*value)

	case models.CardUpdate:
		return v.validateCardUpdate(value)
	case *models.CardUpdate:
		return v.validateCardUpdate(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *CardValidator) validateCard(card models.Card) error {
	if strings.TrimSpace(card.CardName) == "" {
		return ErrEmptyCardName
	}

	if strings.TrimSpace(card.OwnerName) == "" {
		return ErrEmptyOwnerName
	}

	return validateLinks(card.Links)
}

func (v *CardValidator) validateCardUpdate(update models.CardUpdate) error {
	if update.CardName != nil && strings.TrimSpace(*update.CardName) == "" {
		return ErrEmptyCardName
	}

	if update.OwnerName != nil && strings.TrimSpace(*update.OwnerName) == "" {
		return ErrEmptyOwnerName
	}

	if update.Links != nil {
		return validateLinks(*update.Links)
	}

	return nil
}

func validateLinks(links []models.CardLink) error {
	for _, link := range links {
		if strings.TrimSpace(link.Title) == "" {
			return ErrInvalidLink
		}

		u, err := url.Parse(link.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrInvalidLink
		}
	}

	return nil
}
