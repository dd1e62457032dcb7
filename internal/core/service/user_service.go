package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mercato/sales-api/internal/auth"
	"github.com/mercato/sales-api/internal/core/domain"
	"github.com/mercato/sales-api/internal/core/ports"
)

// UserService implements account management.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	roles := input.Roles
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}
	for _, role := range roles {
		if !domain.ValidRole(role) {
			return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalidRole)
		}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", domain.ErrInternal, err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
		IsActive:     true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user created")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserRequest) (*domain.User, error) {
	for _, role := range input.Roles {
		if !domain.ValidRole(role) {
			return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalidRole)
		}
	}

	update := ports.UpdateUserInput{
		Name:     input.Name,
		Roles:    input.Roles,
		IsActive: input.IsActive,
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: hash password: %w", domain.ErrInternal, err)
		}
		update.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
