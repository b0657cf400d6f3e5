package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail     = errors.New("invalid email address")
	ErrEmptyName        = errors.New("name is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	ErrEmptyCardName  = errors.New("card name is required")
	ErrEmptyOwnerName = errors.New("owner name is required")
	ErrInvalidLink    = errors.New("link must have a title and a valid URL")
)
