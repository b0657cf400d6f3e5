// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but does not carry a "<scheme> <token>" value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)

// Sentinel errors produced while decoding multipart card uploads.
var (
	// ErrAssetTooLarge is returned when an uploaded image exceeds the size
	// limit for its asset type.
	ErrAssetTooLarge = errors.New("uploaded image is too large")

	// ErrUnsupportedAssetType is returned when an uploaded image declares a
	// content type outside the accepted set.
	ErrUnsupportedAssetType = errors.New("unsupported image content type")
)
