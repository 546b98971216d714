package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/depotfolio/backend/src/config"
)

func testAuthService(t *testing.T) *AuthService {
	t.Helper()
	config.Cfg = &config.AppConfig{
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
	return NewAuthService("test-secret-key-that-is-long-enough")
}

func TestHashAndComparePassword(t *testing.T) {
	a := testAuthService(t)

	hash, err := a.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, a.CompareHashAndPassword(hash, "s3cret-pass"))
	assert.Error(t, a.CompareHashAndPassword(hash, "wrong-pass"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	a := testAuthService(t)

	token, err := a.GenerateToken("42")
	require.NoError(t, err)

	sub, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", sub)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	a := testAuthService(t)

	token, err := a.GenerateToken("42")
	require.NoError(t, err)

	other := NewAuthService("a-different-secret-key-entirely!")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	a := testAuthService(t)

	_, err := a.ValidateToken("not.a.jwt")
	assert.Error(t, err)

	_, err = a.ValidateToken("")
	assert.Error(t, err)
}

func TestGenerateRefreshTokenIsRandom(t *testing.T) {
	a := testAuthService(t)

	t1, err := a.GenerateRefreshToken()
	require.NoError(t, err)
	t2, err := a.GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	assert.NotEmpty(t, t1)
}
