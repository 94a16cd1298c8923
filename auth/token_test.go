package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
	"github.com/junaidrashid-git/storefront-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testUser = models.User{ID: 12, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "hash"}

func TestIssueAndVerify(t *testing.T) {
	tokens := NewTokens("secret", 0)

	raw, err := tokens.Issue(testUser)
	require.NoError(t, err)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, testUser.Claim(), claims.User)
	assert.Nil(t, claims.ExpiresAt)
}

func TestVerifyRejects(t *testing.T) {
	tokens := NewTokens("secret", 0)
	valid, err := tokens.Issue(testUser)
	require.NoError(t, err)

	otherSecret, err := NewTokens("other", 0).Issue(testUser)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{User: testUser.Claim()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"malformed":    "not-a-token",
		"wrong secret": otherSecret,
		"alg none":     unsigned,
		"tampered":     valid[:len(valid)-2] + "xx",
		"no user":      noUser,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	tokens := NewTokens("secret", time.Hour).WithClock(func() time.Time { return now })

	raw, err := tokens.Issue(testUser)
	require.NoError(t, err)

	_, err = tokens.Verify(raw)
	require.NoError(t, err)

	now = issuedAt.Add(2 * time.Hour)
	_, err = tokens.Verify(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestHasher(t *testing.T) {
	h := NewHasher("pepper", bcrypt.MinCost)

	hash, err := h.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, h.Compare(hash, "hunter2"))
	assert.False(t, h.Compare(hash, "hunter3"))
	assert.False(t, NewHasher("other", bcrypt.MinCost).Compare(hash, "hunter2"))

	_, err = h.Hash("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
