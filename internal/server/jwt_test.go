package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/directionwise/internal/config"
)

func newTestJWTService(now time.Time) *JWTService {
	s := NewJWTService(&config.JWTConfig{Secret: "test-secret-key-for-jwt-signing", ExpirationHours: 24, Issuer: "directionwise"})
	s.now = func() time.Time { return now }
	return s
}

func TestJWTService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestJWTService(now)
	uid := uuid.New()

	token, err := s.GenerateToken(42, uid)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.GetUserID())
	assert.Equal(t, uid, claims.UID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "directionwise", claims.Issuer)
	assert.Equal(t, now.Add(24*time.Hour), claims.ExpiresAt.Time)
}

func TestJWTService_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token, err := newTestJWTService(now).GenerateToken(1, uuid.New())
	require.NoError(t, err)

	_, err = newTestJWTService(now.Add(25 * time.Hour)).ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := newTestJWTService(time.Now()).GenerateToken(1, uuid.New())
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "another-secret", ExpirationHours: 1})
	_, err = other.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token signature")
}

func TestJWTService_Rejects(t *testing.T) {
	s := newTestJWTService(time.Now())

	_, err := s.ValidateToken("")
	assert.Error(t, err)

	_, err = s.ValidateToken("not.a.token")
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1"}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.ValidateToken(unsigned)
	assert.Error(t, err)

	badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	signed, err := badSubject.SignedString([]byte("test-secret-key-for-jwt-signing"))
	require.NoError(t, err)
	_, err = s.ValidateToken(signed)
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	s := newTestJWTService(time.Now())
	token, err := s.GenerateToken(7, uuid.New())
	require.NoError(t, err)

	got, err := s.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.GetUserID())

	_, err = s.AsTokenValidator().ValidateToken("garbage")
	assert.Error(t, err)
}
