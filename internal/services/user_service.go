package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
	"github.com/ScholarStream/scholarship-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Register is idempotent on email: re-registering an existing email echoes
// the stored record and never creates a duplicate.
func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*RegisterUserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewInvalidInputError("validation failed: %v", err)
	}

	email := strings.ToLower(req.Email)

	existing, err := s.repo.User().GetByEmail(ctx, email)
	if err == nil {
		return &RegisterUserResponse{
			Message: "User already exists",
			User:    existing,
			Created: false,
		}, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := &models.User{
		Email:    email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     models.RoleStudent,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "email", email)

	return &RegisterUserResponse{
		User:    user,
		Created: true,
	}, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.User().GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.User().List(ctx)
}

func (s *userService) UpdateRole(ctx context.Context, email string, req *UpdateRoleRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return NewInvalidInputError("validation failed: %v", err)
	}

	err := s.repo.User().UpdateRole(ctx, strings.ToLower(email), req.Role)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update role: %w", err)
	}

	s.logger.Info("user role updated", "email", email, "role", req.Role)
	return nil
}

func (s *userService) Delete(ctx context.Context, email string) error {
	err := s.repo.User().DeleteByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "email", email)
	return nil
}
