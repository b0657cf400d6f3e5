package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-card-share/models"
)

const (
	userColumns = "user_id, email, name, password_hash, role, is_active, created_at, updated_at"

	// The role is decided inside the INSERT itself: the first account ever
	// created becomes admin, every later one a plain user. Two concurrent
	// first registrations can still both evaluate the EXISTS against an
	// empty snapshot; the partial unique index on the admin role rejects the
	// loser, and CreateUser retries it with createUserAsRegular.
	createUser = `INSERT INTO users (email, name, password_hash, role)
    VALUES ($1, $2, $3,
        CASE WHEN EXISTS (SELECT 1 FROM users) THEN 'user' ELSE 'admin' END)
    RETURNING ` + userColumns + `;`

	createUserAsRegular = `INSERT INTO users (email, name, password_hash, role)
    VALUES ($1, $2, $3, 'user')
    RETURNING ` + userColumns + `;`

	// singleAdminConstraint is the partial unique index that caps the table
	// at one admin row (see migration 00001).
	singleAdminConstraint = "users_single_admin_idx"

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	listUsers = `SELECT ` + userColumns + `
    FROM users
    ORDER BY created_at DESC;`

	updateUserPassword = `UPDATE users
    SET password_hash = $1, updated_at = NOW()
    WHERE user_id = $2;`

	attemptColumns = "attempt_id, user_id, platform, ip_address, user_agent, is_successful, failure_reason, created_at"

	createLoginAttempt = `INSERT INTO login_attempts (user_id, platform, ip_address, user_agent, is_successful, failure_reason)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + attemptColumns + `;`

	findAttemptsByUser = `SELECT ` + attemptColumns + `
    FROM login_attempts
    WHERE user_id = $1
    ORDER BY created_at DESC;`

	cardColumns = `card_id, owner_id, share_id, card_name, owner_name, avatar_path, cover_path,
        theme_color, theme_icon, links, address, company, description, phone, email,
        share_code, is_active, view_count, created_at, updated_at`

	createCard = `INSERT INTO cards (owner_id, share_id, card_name, owner_name, avatar_path, cover_path,
        theme_color, theme_icon, links, address, company, description, phone, email)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    RETURNING ` + cardColumns + `;`

	findCardByID = `SELECT ` + cardColumns + `
    FROM cards
    WHERE card_id = $1;`

	findCardByShareID = `SELECT ` + cardColumns + `
    FROM cards
    WHERE share_id = $1 AND is_active = TRUE;`

	findCardsByOwner = `SELECT ` + cardColumns + `
    FROM cards
    WHERE owner_id = $1 AND is_active = TRUE
    ORDER BY created_at DESC;`

	setCardShareCode = `UPDATE cards
    SET share_code = $1, updated_at = NOW()
    WHERE card_id = $2;`

	incrementCardViews = `UPDATE cards
    SET view_count = view_count + 1
    WHERE card_id = $1
    RETURNING view_count;`

	setCardActive = `UPDATE cards
    SET is_active = $1, updated_at = NOW()
    WHERE card_id = $2;`
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUserUpdateQuery builds the partial profile UPDATE. Only non-nil
// fields produce SET clauses. Returns ErrNoFieldsToUpdate when the update
// carries nothing to change.
func buildUserUpdateQuery(userID int64, update models.ProfileUpdate) (string, []any, error) {
	if update.Name == nil && update.Email == nil {
		return "", nil, ErrNoFieldsToUpdate
	}

	builder := psql.Update("users").Set("updated_at", sq.Expr("NOW()"))

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}

	query, args, err := builder.
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildCardUpdateQuery builds the partial card UPDATE. Every non-nil field
// of the update becomes its own SET clause, so two concurrent updates that
// touch different fields both land — last-writer-wins applies per field,
// never per record. An update with no fields still bumps updated_at and
// returns the current row.
func buildCardUpdateQuery(cardID int64, update models.CardUpdate) (string, []any, error) {
	builder := psql.Update("cards").Set("updated_at", sq.Expr("NOW()"))

	if update.CardName != nil {
		builder = builder.Set("card_name", *update.CardName)
	}
	if update.OwnerName != nil {
		builder = builder.Set("owner_name", *update.OwnerName)
	}
	if update.AvatarPath != nil {
		builder = builder.Set("avatar_path", *update.AvatarPath)
	}
	if update.CoverPath != nil {
		builder = builder.Set("cover_path", *update.CoverPath)
	}
	if update.ThemeColor != nil {
		builder = builder.Set("theme_color", *update.ThemeColor)
	}
	if update.ThemeIcon != nil {
		builder = builder.Set("theme_icon", *update.ThemeIcon)
	}
	if update.Links != nil {
		linksJSON, err := json.Marshal(*update.Links)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		builder = builder.Set("links", linksJSON)
	}
	if update.Address != nil {
		builder = builder.Set("address", *update.Address)
	}
	if update.Company != nil {
		builder = builder.Set("company", *update.Company)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Phone != nil {
		builder = builder.Set("phone", *update.Phone)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}

	query, args, err := builder.
		Where(sq.Eq{"card_id": cardID}).
		Suffix("RETURNING " + cardColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
