package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizan/roster/models"
)

func testUser() *models.User {
	return &models.User{ID: 7, Email: "manager@example.com", Role: models.RoleArtistManager}
}

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAndParse(t *testing.T) {
	issuer := newTestIssuer()
	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	claims, err := issuer.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 7, Email: "manager@example.com", Role: models.RoleArtistManager}, claims.Identity())

	claims, err = issuer.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, claims.Type)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	issuer := newTestIssuer()
	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = issuer.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := newTestIssuer()
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.ParseRefresh(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestForeignSignatureRejected(t *testing.T) {
	other := NewTokenIssuer("someone-else", "refresh-secret", time.Minute, time.Hour)
	pair, err := other.Issue(testUser())
	require.NoError(t, err)

	_, err = newTestIssuer().ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNoneAlgorithmRejected(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		Role:   models.RoleSuperAdmin,
		Type:   TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestIssuer().ParseAccess(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: 3, Role: models.RoleArtist})
	id, ok := IdentityFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, uint(3), id.UserID)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(4)
	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := h.Verify(hash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Verify("not-a-hash", "secret1")
	assert.Error(t, err)
}

func TestPasswordHasherRejectsOverlongInput(t *testing.T) {
	h := NewPasswordHasher(4)
	_, err := h.Hash(strings.Repeat("p", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	hash, err := h.Hash(strings.Repeat("p", MaxPasswordBytes))
	require.NoError(t, err)
	ok, err := h.Verify(hash, strings.Repeat("p", MaxPasswordBytes+1))
	require.NoError(t, err)
	assert.False(t, ok)
}
