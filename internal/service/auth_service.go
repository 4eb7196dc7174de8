package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
	"github.com/andreeesz17/inmobiliaria-service/internal/config"
	"github.com/andreeesz17/inmobiliaria-service/internal/repository"
	"github.com/andreeesz17/inmobiliaria-service/internal/session"
	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

// AuthService coordinates login and logout flows.
type AuthService struct {
	users    repository.UserRepository
	sessions *session.Manager
	tokenMgr *auth.TokenManager
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, sessions *session.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		logger:   logger,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates by email and password, stores the minted token in
// the session slot, and returns it. Every failure collapses into one
// opaque message so the response never distinguishes cause.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Info("login lookup failed", zap.Error(err))
		return "", time.Time{}, apperrors.NewUnauthorized("credentials incorrect")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("credentials incorrect")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		s.logger.Error("token mint failed", zap.Error(err))
		return "", time.Time{}, apperrors.NewUnauthorized("credentials incorrect")
	}

	if err := s.sessions.Establish(ctx, token); err != nil {
		s.logger.Error("session slot write failed", zap.Error(err))
		return "", time.Time{}, apperrors.NewUnauthorized("credentials incorrect")
	}
	return token, expiresAt, nil
}

// Logout clears the session slot.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Destroy(ctx)
}
