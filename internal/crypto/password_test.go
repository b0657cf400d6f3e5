package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", digest)

	assert.True(t, h.Verify("correct horse battery staple", digest))
	assert.False(t, h.Verify("wrong password", digest))
}

func TestPasswordHasher_SamePasswordDifferentDigests(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("pw1")
	require.NoError(t, err)
	second, err := h.Hash("pw1")
	require.NoError(t, err)

	// bcrypt salts every digest
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("pw1", first))
	assert.True(t, h.Verify("pw1", second))
}

func TestPasswordHasher_TooLongPassword(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("x", 100))
	assert.Error(t, err)
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	h := NewPasswordHasher(0)
	assert.False(t, h.Verify("pw", "not-a-bcrypt-digest"))
}
