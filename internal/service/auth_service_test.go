package service_test

import (
	"context"
	"testing"
	"time"

	"summit-registration/config"
	"summit-registration/internal/auth"
	"summit-registration/internal/cache"
	"summit-registration/internal/model"
	repoMocks "summit-registration/internal/repository/mocks"
	"summit-registration/internal/service"
	"summit-registration/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAuth(t *testing.T) (*repoMocks.AdminRepositoryMock, service.AuthService, *model.AdminUser) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &model.AdminUser{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}

	repo := repoMocks.NewAdminRepositoryMock()
	svc := service.NewAuthService(repo, cache.NewMemoryLoginAttemptStore(), config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		MaxAttempts:   5,
		LockoutWindow: 15 * time.Minute,
	})

	return repo, svc, admin
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns a token with role claims", func(t *testing.T) {
		repo, svc, admin := setupAuth(t)
		repo.On("FindByUsername", ctx, "admin").Return(admin, nil).Once()

		token, role, err := svc.Login(ctx, "admin", "correct horse", "10.0.0.1")

		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, role)

		claims, err := auth.ParseToken("test-secret", token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, model.RoleAdmin, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo, svc, admin := setupAuth(t)
		repo.On("FindByUsername", ctx, "admin").Return(admin, nil).Once()

		_, _, err := svc.Login(ctx, "admin", "wrong", "10.0.0.1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown user maps to invalid credentials", func(t *testing.T) {
		repo, svc, _ := setupAuth(t)
		repo.On("FindByUsername", ctx, "ghost").Return(nil, apperrors.ErrAdminNotFound).Once()

		_, _, err := svc.Login(ctx, "ghost", "whatever", "10.0.0.1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("locks out after max attempts", func(t *testing.T) {
		repo, svc, admin := setupAuth(t)
		repo.On("FindByUsername", ctx, "admin").Return(admin, nil).Times(5)

		for i := 0; i < 5; i++ {
			_, _, err := svc.Login(ctx, "admin", "wrong", "10.0.0.1")
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		}

		_, _, err := svc.Login(ctx, "admin", "wrong", "10.0.0.1")
		assert.ErrorIs(t, err, apperrors.ErrTooManyLoginAttempts)

		// a different IP is counted separately
		repo.On("FindByUsername", ctx, "admin").Return(admin, nil).Once()
		_, _, err = svc.Login(ctx, "admin", "correct horse", "10.0.0.2")
		assert.NoError(t, err)
	})

	t.Run("successful login resets the counter", func(t *testing.T) {
		repo, svc, admin := setupAuth(t)
		repo.On("FindByUsername", ctx, "admin").Return(admin, nil).Times(8)

		for i := 0; i < 4; i++ {
			_, _, err := svc.Login(ctx, "admin", "wrong", "10.0.0.1")
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		}

		_, _, err := svc.Login(ctx, "admin", "correct horse", "10.0.0.1")
		require.NoError(t, err)

		// counter restarted: four more failures still do not lock out
		for i := 0; i < 3; i++ {
			_, _, err := svc.Login(ctx, "admin", "wrong", "10.0.0.1")
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		}
	})
}
