package auth

import (
	"testing"
	"time"

	"github.com/mtran/inventory-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
}

func testPayload() TokenPayload {
	return TokenPayload{
		UserID:   42,
		Username: "alice",
		Role:     domain.RoleModerator,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.IssueAccessToken(testPayload())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), payload.UserID)
	assert.Equal(t, "alice", payload.Username)
	assert.Equal(t, domain.RoleModerator, payload.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.IssueRefreshToken(testPayload())
	require.NoError(t, err)

	payload, err := m.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), payload.UserID)
}

func TestTokenClassesAreNotInterchangeable(t *testing.T) {
	m := newTestManager()

	accessToken, err := m.IssueAccessToken(testPayload())
	require.NoError(t, err)
	refreshToken, err := m.IssueRefreshToken(testPayload())
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager("different-access", "different-refresh", 15*time.Minute, 168*time.Hour)

	token, err := m.IssueAccessToken(testPayload())
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager()

	_, err := m.VerifyAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpiredToken(t *testing.T) {
	// Negative TTL mints a token that is already past its expiry
	m := NewManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, err := m.IssueAccessToken(testPayload())
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenExpiration(t *testing.T) {
	m := newTestManager()

	before := time.Now().Add(15 * time.Minute).Add(-time.Second).UnixMilli()
	token, err := m.IssueAccessToken(testPayload())
	require.NoError(t, err)
	after := time.Now().Add(15 * time.Minute).Add(time.Second).UnixMilli()

	expires := m.TokenExpiration(token)
	assert.GreaterOrEqual(t, expires, before)
	assert.LessOrEqual(t, expires, after)
}

func TestTokenExpirationOfGarbage(t *testing.T) {
	m := newTestManager()
	assert.Equal(t, int64(0), m.TokenExpiration("garbage"))
}
