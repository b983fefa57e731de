package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := tokens.Generate(userID, "jess@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jess@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	other := NewTokenService("other-secret", time.Hour)

	token, _, err := tokens.Generate(uuid.New(), "jess@example.com", "user")
	require.NoError(t, err)

	claims, err := other.Validate(token)
	assert.Equal(t, ErrInvalidToken, err)
	assert.Nil(t, claims)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	tokens := NewTokenService("test-secret", -time.Minute)

	token, _, err := tokens.Generate(uuid.New(), "jess@example.com", "user")
	require.NoError(t, err)

	claims, err := tokens.Validate(token)
	assert.Equal(t, ErrExpiredToken, err)
	assert.Nil(t, claims)
}

func TestTokenService_Validate_Garbage(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	claims, err := tokens.Validate("not-a-token")
	assert.Equal(t, ErrInvalidToken, err)
	assert.Nil(t, claims)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	require.NoError(t, CheckPassword(hash, "secret123"))
	require.Error(t, CheckPassword(hash, "wrong-password"))
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	require.Error(t, err)
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
