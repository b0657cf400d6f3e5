// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// card-share server handlers and middleware.
//
// All Msg* constants are human-readable message strings written into log
// entries when a handler fails. Keeping them in one place ensures consistent
// wording throughout the API.
package app

const (
	// MsgRegistrationFailed is logged when the registration handler cannot
	// create an account.
	MsgRegistrationFailed = "user registration failed"

	// MsgLoginFailed is logged when the login handler cannot issue a session
	// token.
	MsgLoginFailed = "user login failed"

	// MsgProfileLookupFailed is logged when the current account cannot be
	// resolved from its JWT identity.
	MsgProfileLookupFailed = "profile lookup failed"

	// MsgProfileUpdateFailed is logged when a profile change is rejected or
	// cannot be persisted.
	MsgProfileUpdateFailed = "profile update failed"

	// MsgPasswordChangeFailed is logged when a password rotation is rejected
	// or cannot be persisted.
	MsgPasswordChangeFailed = "password change failed"

	// MsgLoginHistoryFailed is logged when the login-attempt audit trail
	// cannot be read.
	MsgLoginHistoryFailed = "login history lookup failed"

	// MsgUserListingDenied is logged when a non-administrator requests the
	// account listing.
	MsgUserListingDenied = "user listing is admin-only"

	// MsgUserListingFailed is logged when the account listing cannot be read.
	MsgUserListingFailed = "user listing failed"

	// MsgInvalidCardForm is logged when a multipart card submission cannot be
	// decoded: broken JSON payload, oversized image, or unsupported image
	// type.
	MsgInvalidCardForm = "invalid card form"

	// MsgCardCreationFailed is logged when a card cannot be created.
	MsgCardCreationFailed = "card creation failed"

	// MsgCardListingFailed is logged when the owner's card listing cannot be
	// read.
	MsgCardListingFailed = "card listing failed"

	// MsgCardLookupFailed is logged when a card cannot be resolved by its id
	// or share identifier.
	MsgCardLookupFailed = "card lookup failed"

	// MsgCardUpdateFailed is logged when a card change is rejected or cannot
	// be persisted.
	MsgCardUpdateFailed = "card update failed"

	// MsgCardRemovalFailed is logged when a card cannot be deactivated.
	MsgCardRemovalFailed = "card removal failed"

	// MsgShareCodeFailed is logged when a share code cannot be regenerated.
	MsgShareCodeFailed = "share code regeneration failed"
)
