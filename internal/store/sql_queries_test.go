// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-card-share/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildUserUpdateQuery_SQLContainsParts(t *testing.T) {
	name := "Johnny"
	email := "johnny@example.com"

	query, args, err := buildUserUpdateQuery(42, models.ProfileUpdate{Name: &name, Email: &email})
	require.NoError(t, err)

	// args checks: two SET values plus the WHERE id
	require.Len(t, args, 3)
	require.Contains(t, args, name)
	require.Contains(t, args, email)
	require.Contains(t, args, int64(42))

	q := strings.ToLower(query)

	require.Contains(t, q, "update users")
	require.Contains(t, q, "set")
	require.Contains(t, q, "name")
	require.Contains(t, q, "email")
	require.Contains(t, q, "updated_at")
	require.Contains(t, q, "where")
	require.Contains(t, q, "returning")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")
}

func Test_buildUserUpdateQuery_SkipsNilFields(t *testing.T) {
	name := "Johnny"

	query, args, err := buildUserUpdateQuery(42, models.ProfileUpdate{Name: &name})
	require.NoError(t, err)

	require.Len(t, args, 2)
	assert.NotContains(t, strings.ToLower(query), "email")
}

func Test_buildUserUpdateQuery_NoFields(t *testing.T) {
	_, _, err := buildUserUpdateQuery(42, models.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func Test_buildCardUpdateQuery_SQLContainsParts(t *testing.T) {
	cardName := "Consulting"
	phone := "+1 555 0100"
	links := []models.CardLink{{Title: "site", URL: "https://example.com"}}

	query, args, err := buildCardUpdateQuery(7, models.CardUpdate{
		CardName: &cardName,
		Phone:    &phone,
		Links:    &links,
	})
	require.NoError(t, err)

	// three SET values plus the WHERE id
	require.Len(t, args, 4)
	require.Contains(t, args, cardName)
	require.Contains(t, args, phone)
	require.Contains(t, args, int64(7))

	q := strings.ToLower(query)

	require.Contains(t, q, "update cards")
	require.Contains(t, q, "card_name")
	require.Contains(t, q, "phone")
	require.Contains(t, q, "links")
	require.Contains(t, q, "updated_at")
	require.Contains(t, q, "returning")
}

func Test_buildCardUpdateQuery_LinksMarshalToJSON(t *testing.T) {
	links := []models.CardLink{{Title: "site", URL: "https://example.com"}}

	_, args, err := buildCardUpdateQuery(7, models.CardUpdate{Links: &links})
	require.NoError(t, err)

	require.Len(t, args, 2)
	linksJSON, ok := args[0].([]byte)
	require.True(t, ok, "links must be marshalled to a jsonb byte slice")
	assert.JSONEq(t, `[{"title":"site","url":"https://example.com"}]`, string(linksJSON))
}

func Test_buildCardUpdateQuery_EmptyUpdateStillBumpsTimestamp(t *testing.T) {
	query, args, err := buildCardUpdateQuery(7, models.CardUpdate{})
	require.NoError(t, err)

	require.Len(t, args, 1)
	require.Equal(t, int64(7), args[0])

	q := strings.ToLower(query)
	assert.Contains(t, q, "updated_at")
	assert.Contains(t, q, "returning")
}
