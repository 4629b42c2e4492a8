package service

import (
	"context"
	"errors"
	"fmt"

	"summit-registration/config"
	"summit-registration/internal/auth"
	"summit-registration/internal/cache"
	"summit-registration/internal/repository"
	"summit-registration/pkg/apperrors"
	"summit-registration/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Login returns a signed JWT, or ErrTooManyLoginAttempts once the
	// lockout threshold is reached for this username+IP.
	Login(ctx context.Context, username, password, clientIP string) (token string, role string, err error)
}

type AuthServiceImpl struct {
	repo     repository.AdminRepository
	attempts cache.LoginAttemptStore
	cfg      config.AuthConfig
	log      *zap.Logger
}

func NewAuthService(repo repository.AdminRepository, attempts cache.LoginAttemptStore, cfg config.AuthConfig) AuthService {
	return &AuthServiceImpl{
		repo:     repo,
		attempts: attempts,
		cfg:      cfg,
		log:      logger.WithComponent("auth"),
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password, clientIP string) (string, string, error) {
	key := fmt.Sprintf("%s:%s", username, clientIP)

	count, err := s.attempts.Incr(ctx, key, s.cfg.LockoutWindow)
	if err != nil {
		// limiter outage must not lock everyone out
		s.log.Warn("login attempt store unavailable", zap.Error(err))
	} else if count > int64(s.cfg.MaxAttempts) {
		s.log.Warn("login locked out",
			zap.String("username", username), zap.String("ip", clientIP))
		return "", "", apperrors.ErrTooManyLoginAttempts
	}

	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			return "", "", apperrors.ErrInvalidCredentials
		}
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", "", apperrors.ErrInvalidCredentials
	}

	if err := s.attempts.Reset(ctx, key); err != nil {
		s.log.Warn("failed to reset login attempts", zap.Error(err))
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, s.cfg.TokenTTL, admin.Username, admin.Role)
	if err != nil {
		return "", "", err
	}

	return token, admin.Role, nil
}
