package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_DigestsDiffer(t *testing.T) {
	a, err := HashPassword("s3cret")
	require.NoError(t, err)
	b, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "salt must make digests unique")
	assert.NotEqual(t, "s3cret", a, "digest must not expose the plaintext")
}

func TestVerifyPassword_Match(t *testing.T) {
	digest, err := HashPassword("s3cret")
	require.NoError(t, err)

	res, err := VerifyPassword(digest, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, Match, res)
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	digest, err := HashPassword("s3cret")
	require.NoError(t, err)

	res, err := VerifyPassword(digest, "wrong")
	require.NoError(t, err)
	assert.Equal(t, Mismatch, res)
}

func TestVerifyPassword_StaleCost(t *testing.T) {
	digest, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	res, err := VerifyPassword(string(digest), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, MatchStaleCost, res)
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	_, err := VerifyPassword("not-a-bcrypt-digest", "s3cret")
	assert.Error(t, err)
}
