package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService("access-secret", "refresh-secret", 30*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	userId := uuid.New()

	tok, err := svc.IssueAccessToken(userId)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := svc.VerifyAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, userId, got)
}

func TestRefreshTokenCarriesSubject(t *testing.T) {
	svc := newTestService()
	userId := uuid.New()

	tok, err := svc.IssueRefreshToken(userId)
	require.NoError(t, err)

	got, err := svc.VerifyRefreshToken(tok)
	require.NoError(t, err)
	assert.Equal(t, userId, got)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	svc := newTestService()
	userId := uuid.New()

	accessTok, err := svc.IssueAccessToken(userId)
	require.NoError(t, err)
	refreshTok, err := svc.IssueRefreshToken(userId)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(accessTok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAccessToken(refreshTok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewService("other-secret", "other-refresh", time.Minute, time.Minute)

	tok, err := svc.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewService("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	tok, err := svc.IssueAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.VerifyAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
