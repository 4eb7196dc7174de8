package service

import (
	"context"

	"github.com/andreeesz17/inmobiliaria-service/internal/domain"
	"github.com/andreeesz17/inmobiliaria-service/internal/repository"
	apperrors "github.com/andreeesz17/inmobiliaria-service/pkg/util/errorutil"
)

// UserService serves the user and agent directories.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ListUsers returns the account directory.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	result, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListAgents returns accounts holding the agent role.
func (s *UserService) ListAgents(ctx context.Context, limit, offset int) ([]domain.User, error) {
	result, err := s.users.ListByRole(ctx, domain.RoleAgent, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}
