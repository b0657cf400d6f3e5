package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-card-share/models"
)

const (
	FieldEmail    = "email"
	FieldName     = "name"
	FieldPassword = "password"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// AccountValidator checks registration and profile-update input before it
// reaches the authentication service.
type AccountValidator struct {
}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// RegistrationInput is the caller-facing registration payload validated by
// [AccountValidator].
type RegistrationInput struct {
	Email    string
	Name     string
	Password string
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case RegistrationInput:
		return v.validateRegistration(value, fields...)
	case *RegistrationInput:
		return v.validateRegistration(*value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(value)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateRegistration(in RegistrationInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldName, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldEmail:
			if err := validateEmail(in.Email); err != nil {
				return err
			}
		case FieldName:
			if strings.TrimSpace(in.Name) == "" {
				return ErrEmptyName
			}
		case FieldPassword:
			if len(in.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateProfileUpdate(update models.ProfileUpdate) error {
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return err
		}
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return ErrEmptyName
	}

	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return ErrInvalidEmail
	}
	return nil
}
