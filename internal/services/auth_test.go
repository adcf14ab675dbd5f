package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dee1911/Aspire.can/internal/data/repos/testutil"
	"github.com/Dee1911/Aspire.can/internal/platform/ctxutil"
)

func newAuth(t *testing.T, issuer string) AuthService {
	t.Helper()
	as, err := NewAuthService(testutil.Logger(t), "test-secret", issuer, time.Hour)
	require.NoError(t, err)
	return as
}

func TestIssueAndVerify(t *testing.T) {
	as := newAuth(t, "aspire")
	tok, err := as.IssueToken("user-123")
	require.NoError(t, err)

	ctx, err := as.SetContextFromToken(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", ctxutil.UserID(ctx))
}

func TestRejectsBadTokens(t *testing.T) {
	as := newAuth(t, "aspire")

	_, err := as.SetContextFromToken(context.Background(), "")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = as.SetContextFromToken(context.Background(), "not-a-jwt")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	other := newAuth(t, "someone-else")
	tok, err := other.IssueToken("user-123")
	require.NoError(t, err)
	_, err = as.SetContextFromToken(context.Background(), tok)
	assert.True(t, errors.Is(err, ErrUnauthorized), "issuer mismatch")

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-123",
		Issuer:    "aspire",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	signed, err := forged.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)
	_, err = as.SetContextFromToken(context.Background(), signed)
	assert.True(t, errors.Is(err, ErrUnauthorized), "bad signature")
}

func TestRejectsExpiredAndPathLikeSubjects(t *testing.T) {
	as := newAuth(t, "")
	impl := as.(*authService)

	impl.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := as.IssueToken("user-123")
	require.NoError(t, err)
	impl.now = time.Now
	_, err = as.SetContextFromToken(context.Background(), tok)
	assert.True(t, errors.Is(err, ErrUnauthorized), "expired")

	tok, err = as.IssueToken("a/b")
	require.NoError(t, err)
	_, err = as.SetContextFromToken(context.Background(), tok)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAuthService(testutil.Logger(t), " ", "", time.Hour)
	require.Error(t, err)
}
