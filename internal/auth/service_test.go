package auth

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/svaldez/catalog-admin/internal/config"
	"github.com/svaldez/catalog-admin/internal/entities"
)

func setupService(t *testing.T) (*Service, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))

	cfg := config.Auth{
		Mode:            config.AuthModeLocal,
		BcryptCost:      bcrypt.MinCost,
		SessionLifetime: time.Hour,
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return NewService(db, cfg), cleanup
}

func TestService_CreateUser(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	user, err := svc.CreateUser("admin", "admin@example.com", "password12345", true)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsAdmin)
	assert.NotEqual(t, "password12345", user.PasswordHash)

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := svc.CreateUser("admin", "other@example.com", "password12345", false)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("invalid username rejected", func(t *testing.T) {
		_, err := svc.CreateUser("a b", "ab@example.com", "password12345", false)
		assert.ErrorIs(t, err, ErrUsernameInvalid)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		_, err := svc.CreateUser("editor", "not-an-email", "password12345", false)
		assert.ErrorIs(t, err, ErrEmailInvalid)
	})
}

func TestService_Authenticate(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.CreateUser("admin", "admin@example.com", "password12345", true)
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Authenticate("admin", "password12345")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
	})

	t.Run("login via email", func(t *testing.T) {
		user, err := svc.Authenticate("admin@example.com", "password12345")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("admin", "not-the-password")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate("ghost", "password12345")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_Tokens(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	user, err := svc.CreateUser("admin", "admin@example.com", "password12345", true)
	require.NoError(t, err)

	token, err := svc.GenerateToken(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	t.Run("regenerating invalidates the old token", func(t *testing.T) {
		newToken, err := svc.GenerateToken(user.ID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = svc.ValidateToken(newToken)
		assert.NoError(t, err)
	})

	t.Run("revoke", func(t *testing.T) {
		require.NoError(t, svc.RevokeToken(user.ID))
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GenerateToken(9999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_ChangePassword(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	user, err := svc.CreateUser("admin", "admin@example.com", "password12345", true)
	require.NoError(t, err)

	require.Error(t, svc.ChangePassword(user.ID, "wrong-old-pass", "new-password-123"))
	require.NoError(t, svc.ChangePassword(user.ID, "password12345", "new-password-123"))

	_, err = svc.Authenticate("admin", "new-password-123")
	assert.NoError(t, err)
}
