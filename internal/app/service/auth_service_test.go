package service

import (
	"context"
	"testing"
	"time"

	"github.com/sabimarket/sabimarket-backend/config"
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	jwtCfg := &config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
	return NewAuthService(repository.NewUserRepository(testDB), jwtCfg), testDB
}

func TestRegister(t *testing.T) {
	t.Run("creates a trader by default", func(t *testing.T) {
		authService, _ := setupAuthServiceTest(t)

		user, err := authService.Register(RegisterInput{
			FullName:    "Ngozi Okafor",
			Email:       "ngozi@example.com",
			PhoneNumber: "+2348012345678",
			Password:    "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, model.RoleTrader, user.Role)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "password123", user.PasswordHash)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		authService, _ := setupAuthServiceTest(t)

		_, err := authService.Register(RegisterInput{
			FullName: "First",
			Email:    "taken@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		_, err = authService.Register(RegisterInput{
			FullName: "Second",
			Email:    "taken@example.com",
			Password: "password456",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("keeps an explicit role", func(t *testing.T) {
		authService, _ := setupAuthServiceTest(t)

		user, err := authService.Register(RegisterInput{
			FullName: "Ada Caretaker",
			Email:    "ada@example.com",
			Password: "password123",
			Role:     model.RoleCaretaker,
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleCaretaker, user.Role)
	})
}

func TestLogin(t *testing.T) {
	register := func(t *testing.T, authService AuthService) *model.User {
		user, err := authService.Register(RegisterInput{
			FullName: "Ngozi Okafor",
			Email:    "ngozi@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		return user
	}

	t.Run("returns the user and a token pair", func(t *testing.T) {
		authService, _ := setupAuthServiceTest(t)
		user := register(t, authService)

		result, err := authService.Login("ngozi@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		authService, _ := setupAuthServiceTest(t)
		register(t, authService)

		_, err := authService.Login("ngozi@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error as a bad password", func(t *testing.T) {
		authService, _ := setupAuthServiceTest(t)

		_, err := authService.Login("nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		authService, testDB := setupAuthServiceTest(t)
		user := register(t, authService)

		require.NoError(t, testDB.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

		_, err := authService.Login("ngozi@example.com", "password123")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestRefreshTokens(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		FullName: "Ngozi Okafor",
		Email:    "ngozi@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	result, err := authService.Login("ngozi@example.com", "password123")
	require.NoError(t, err)

	tokens, err := authService.RefreshTokens(result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = authService.RefreshTokens("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		FullName: "Ngozi Okafor",
		Email:    "ngozi@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	result, err := authService.Login("ngozi@example.com", "password123")
	require.NoError(t, err)

	// Without Redis configured, logout is a no-op but must not fail.
	assert.NoError(t, authService.Logout(context.Background(), result.Tokens.AccessToken))
	assert.NoError(t, authService.Logout(context.Background(), "garbage"))
}

func TestGetMe(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		FullName: "Ngozi Okafor",
		Email:    "ngozi@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	me, err := authService.GetMe(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ngozi Okafor", me.FullName)

	_, err = authService.GetMe("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
