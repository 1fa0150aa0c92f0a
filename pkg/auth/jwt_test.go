package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func newTestPair(t *testing.T, issuer string, expiry time.Duration) (*JWTGenerator, *JWTValidator) {
	t.Helper()

	cfg := JWTConfig{SecretKey: testSecret, Issuer: issuer}
	gen, err := NewJWTGenerator(cfg, expiry)
	require.NoError(t, err)
	validator, err := NewJWTValidator(cfg)
	require.NoError(t, err)
	return gen, validator
}

func TestJWTValidator_RoundTrip(t *testing.T) {
	gen, validator := newTestPair(t, "notes-api", time.Hour)

	token, err := gen.GenerateToken("owner-123", "owner@example.com")
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner-123", claims.Subject)
	assert.Equal(t, "owner@example.com", claims.Email)
}

func TestJWTValidator_StripsBearerPrefix(t *testing.T) {
	gen, validator := newTestPair(t, "notes-api", time.Hour)

	token, err := gen.GenerateToken("owner-123", "")
	require.NoError(t, err)

	claims, err := validator.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "owner-123", claims.Subject)
}

func TestJWTValidator_RejectsExpiredToken(t *testing.T) {
	gen, validator := newTestPair(t, "notes-api", time.Hour)
	gen.expiryTime = -time.Minute

	token, err := gen.GenerateToken("owner-123", "")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTValidator_RejectsWrongIssuer(t *testing.T) {
	gen, err := NewJWTGenerator(JWTConfig{SecretKey: testSecret, Issuer: "someone-else"}, time.Hour)
	require.NoError(t, err)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret, Issuer: "notes-api"})
	require.NoError(t, err)

	token, err := gen.GenerateToken("owner-123", "")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTValidator_RejectsGarbage(t *testing.T) {
	_, validator := newTestPair(t, "notes-api", time.Hour)

	_, err := validator.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = validator.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestTokenResolver(t *testing.T) {
	gen, validator := newTestPair(t, "notes-api", time.Hour)
	resolver := NewTokenResolver(validator)

	token, err := gen.GenerateToken("owner-123", "")
	require.NoError(t, err)

	t.Run("valid bearer token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/notes", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		id, err := resolver.Resolve(r)
		require.NoError(t, err)
		assert.Equal(t, "owner-123", id)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/notes", nil)

		_, err := resolver.Resolve(r)
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/notes", nil)
		r.Header.Set("Authorization", token)

		_, err := resolver.Resolve(r)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGatewayResolver(t *testing.T) {
	resolver := NewGatewayResolver()

	r := httptest.NewRequest("GET", "/api/v1/notes", nil)
	_, err := resolver.Resolve(r)
	assert.ErrorIs(t, err, ErrNoPrincipal)

	r.Header.Set(GatewayPrincipalHeader, "owner-456")
	id, err := resolver.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "owner-456", id)
}

func TestStaticResolver(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/notes", nil)

	id, err := NewStaticResolver("dev-owner").Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "dev-owner", id)

	_, err = NewStaticResolver("").Resolve(r)
	assert.ErrorIs(t, err, ErrNoPrincipal)
}
