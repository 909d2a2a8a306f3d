package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestManager(t *testing.T, clock *fakeClock) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret", DefaultTokenTTL, WithClock(clock.Now))
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager("  ", time.Hour)
	assert.Error(t, err)
}

func TestNewTokenManager_DefaultsTTL(t *testing.T) {
	m, err := NewTokenManager("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, m.ttl)
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(t, clock)

	token, expiresAt, err := m.Issue(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, clock.t.Add(7*24*time.Hour), expiresAt)

	userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenManager_IssueRejectsNonPositiveUser(t *testing.T) {
	m := newTestManager(t, &fakeClock{t: time.Now()})
	_, _, err := m.Issue(0)
	assert.Error(t, err)
}

func TestTokenManager_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issued}
	m := newTestManager(t, clock)

	token, _, err := m.Issue(7)
	require.NoError(t, err)

	clock.t = issued.Add(7 * 24 * time.Hour)
	userID, err := m.Parse(token)
	require.NoError(t, err, "token must be accepted at exactly T+7d")
	assert.Equal(t, int64(7), userID)

	clock.t = issued.Add(7*24*time.Hour + time.Second)
	_, err = m.Parse(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_SubSecondIssueTime(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 600_000_000, time.UTC)
	clock := &fakeClock{t: issued}
	m := newTestManager(t, clock)

	token, expiresAt, err := m.Issue(7)
	require.NoError(t, err)
	assert.Equal(t, issued.Truncate(time.Second).Add(DefaultTokenTTL), expiresAt)

	clock.t = expiresAt
	_, err = m.Parse(token)
	assert.NoError(t, err)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newTestManager(t, clock)
	other, err := NewTokenManager("another-secret", DefaultTokenTTL, WithClock(clock.Now))
	require.NoError(t, err)

	token, _, err := other.Issue(1)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsTamperedPayload(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newTestManager(t, clock)

	token, _, err := m.Issue(1)
	require.NoError(t, err)
	forged, _, err := m.Issue(2)
	require.NoError(t, err)

	// splice user 2's payload onto user 1's signature
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = m.Parse(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsMalformed(t *testing.T) {
	m := newTestManager(t, &fakeClock{t: time.Now()})

	for _, token := range []string{"", "abc", "a.b.c", "Bearer x.y.z"} {
		_, err := m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager(t, &fakeClock{t: time.Now()})

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsMissingClaims(t *testing.T) {
	m := newTestManager(t, &fakeClock{t: time.Now()})

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Parse(noExpiry)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Parse(noUser)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserIDContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithUserID(context.Background(), 9)
	id, ok := UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)
}
