package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-card-share/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestAccountValidator_Registration(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		input   RegistrationInput
		wantErr error
	}{
		{
			name:    "valid",
			input:   RegistrationInput{Email: "a@x.com", Name: "Alice", Password: "long-enough"},
			wantErr: nil,
		},
		{
			name:    "bad email",
			input:   RegistrationInput{Email: "not-an-email", Name: "Alice", Password: "long-enough"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "empty name",
			input:   RegistrationInput{Email: "a@x.com", Name: "   ", Password: "long-enough"},
			wantErr: ErrEmptyName,
		},
		{
			name:    "short password",
			input:   RegistrationInput{Email: "a@x.com", Name: "Alice", Password: "short"},
			wantErr: ErrPasswordTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAccountValidator_FieldScoping(t *testing.T) {
	v := NewAccountValidator()

	// only the password field is checked, so the bad email passes
	err := v.Validate(context.Background(),
		RegistrationInput{Email: "bad", Password: "long-enough"}, FieldPassword)
	assert.NoError(t, err)

	err = v.Validate(context.Background(), RegistrationInput{}, "no-such-field")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestAccountValidator_ProfileUpdate(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ProfileUpdate{Name: strPtr("Bob")}))
	assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdate{Email: strPtr("nope")}), ErrInvalidEmail)
	assert.ErrorIs(t, v.Validate(ctx, models.ProfileUpdate{Name: strPtr(" ")}), ErrEmptyName)
	// nothing to change is fine at this layer
	assert.NoError(t, v.Validate(ctx, models.ProfileUpdate{}))
}

func TestAccountValidator_UnsupportedType(t *testing.T) {
	v := NewAccountValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}

func TestCardValidator_Card(t *testing.T) {
	v := NewCardValidator()
	ctx := context.Background()

	valid := models.Card{
		CardName:  "Work",
		OwnerName: "Alice",
		Links:     []models.CardLink{{Title: "Site", URL: "https://example.com"}},
	}
	assert.NoError(t, v.Validate(ctx, valid))

	noName := valid
	noName.CardName = ""
	assert.ErrorIs(t, v.Validate(ctx, noName), ErrEmptyCardName)

	badLink := valid
	badLink.Links = []models.CardLink{{Title: "Site", URL: "not a url"}}
	assert.ErrorIs(t, v.Validate(ctx, badLink), ErrInvalidLink)
}

func TestCardValidator_CardUpdate(t *testing.T) {
	v := NewCardValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.CardUpdate{CardName: strPtr("New name")}))
	assert.ErrorIs(t, v.Validate(ctx, models.CardUpdate{CardName: strPtr("  ")}), ErrEmptyCardName)

	links := []models.CardLink{{Title: "", URL: "https://example.com"}}
	assert.ErrorIs(t, v.Validate(ctx, models.CardUpdate{Links: &links}), ErrInvalidLink)

	// empty update carries no invalid fields
	assert.NoError(t, v.Validate(ctx, models.CardUpdate{}))
}
