package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/depotfolio/backend/src/database"
	"github.com/username/depotfolio/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")

	dir, err := os.MkdirTemp("", "depotfolio-model-test-*")
	if err != nil {
		logger.L.Error("temp dir creation failed", "error", err)
		os.Exit(1)
	}
	database.InitDB(filepath.Join(dir, "test.db"))

	code := m.Run()
	database.DB.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

func createTestUser(t *testing.T, username, email string) *User {
	t.Helper()
	u := &User{Username: username, Email: email}
	require.NoError(t, u.HashPassword("correct-horse"))
	require.NoError(t, u.CreateUser(database.DB))
	require.NotZero(t, u.ID)
	return u
}

func TestCreateAndGetUser(t *testing.T) {
	created := createTestUser(t, "alice", "alice@example.com")
	assert.Equal(t, "local", created.AuthProvider)

	byName, err := GetUserByUsername(database.DB, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "alice@example.com", byName.Email)
	assert.False(t, byName.IsEmailVerified)

	byEmail, err := GetUserByEmail(database.DB, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := GetUserByID(database.DB, int64(created.ID))
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	assert.NoError(t, byName.CheckPassword("correct-horse"))
	assert.Error(t, byName.CheckPassword("battery-staple"))
}

func TestGetUserNotFound(t *testing.T) {
	_, err := GetUserByUsername(database.DB, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = GetUserByID(database.DB, 999999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	createTestUser(t, "bob", "bob@example.com")

	dup := &User{Username: "bob", Email: "bob2@example.com", Password: "x"}
	assert.Error(t, dup.CreateUser(database.DB))
}

func TestEmailVerificationFlow(t *testing.T) {
	u := createTestUser(t, "carol", "carol@example.com")

	require.NoError(t, SetEmailVerificationToken(database.DB, u.ID, "verify-token", time.Now().Add(time.Hour)))
	require.NoError(t, VerifyEmailByToken(database.DB, "verify-token"))

	verified, err := GetUserByID(database.DB, int64(u.ID))
	require.NoError(t, err)
	assert.True(t, verified.IsEmailVerified)

	// The token is single-use.
	assert.ErrorIs(t, VerifyEmailByToken(database.DB, "verify-token"), ErrUserNotFound)
}

func TestEmailVerificationExpiredToken(t *testing.T) {
	u := createTestUser(t, "dave", "dave@example.com")

	require.NoError(t, SetEmailVerificationToken(database.DB, u.ID, "stale-token", time.Now().Add(-time.Minute)))
	assert.ErrorIs(t, VerifyEmailByToken(database.DB, "stale-token"), ErrUserNotFound)
}

func TestPasswordResetFlow(t *testing.T) {
	u := createTestUser(t, "erin", "erin@example.com")

	require.NoError(t, SetPasswordResetToken(database.DB, u.ID, "reset-token", time.Now().Add(time.Hour)))

	newUser := &User{}
	require.NoError(t, newUser.HashPassword("new-password"))
	require.NoError(t, ResetPasswordByToken(database.DB, "reset-token", newUser.Password))

	reloaded, err := GetUserByID(database.DB, int64(u.ID))
	require.NoError(t, err)
	assert.NoError(t, reloaded.CheckPassword("new-password"))
	assert.Error(t, reloaded.CheckPassword("correct-horse"))

	assert.ErrorIs(t, ResetPasswordByToken(database.DB, "reset-token", newUser.Password), ErrUserNotFound)
	assert.ErrorIs(t, ResetPasswordByToken(database.DB, "unknown-token", newUser.Password), ErrUserNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	u := createTestUser(t, "frank", "frank@example.com")

	session := &Session{
		UserID:       u.ID,
		Token:        "access-token-frank",
		RefreshToken: "refresh-token-frank",
		UserAgent:    "test-agent",
		ClientIP:     "127.0.0.1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	require.NoError(t, CreateSession(database.DB, session))

	byToken, err := GetSessionByToken(database.DB, "access-token-frank")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byToken.UserID)
	assert.Equal(t, "refresh-token-frank", byToken.RefreshToken)

	byRefresh, err := GetSessionByRefreshToken(database.DB, "refresh-token-frank")
	require.NoError(t, err)
	assert.Equal(t, byToken.ID, byRefresh.ID)

	require.NoError(t, DeleteSessionByToken(database.DB, "access-token-frank"))
	_, err = GetSessionByToken(database.DB, "access-token-frank")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting an already-deleted session is not an error.
	assert.NoError(t, DeleteSessionByToken(database.DB, "access-token-frank"))
}

func TestExpiredSessionIsNotReturned(t *testing.T) {
	u := createTestUser(t, "grace", "grace@example.com")

	session := &Session{
		UserID:       u.ID,
		Token:        "expired-access",
		RefreshToken: "expired-refresh",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	require.NoError(t, CreateSession(database.DB, session))

	_, err := GetSessionByToken(database.DB, "expired-access")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = GetSessionByRefreshToken(database.DB, "expired-refresh")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
