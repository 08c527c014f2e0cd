package account

import (
	"context"
	"fmt"
	"log/slog"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/repositories"
	"clipdeck/internal/domain/services"
)

type userService struct {
	profileRepo repositories.ProfileRepository
	authorizer  services.Authorizer
	logger      *slog.Logger
}

// NewUserService creates the ADMIN-only profile management service
func NewUserService(
	profileRepo repositories.ProfileRepository,
	authorizer services.Authorizer,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		profileRepo: profileRepo,
		authorizer:  authorizer,
		logger:      logger,
	}
}

func (s *userService) ListUsers(ctx context.Context, caller *models.Session) ([]models.Profile, error) {
	if err := s.authorizer.Require(caller, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.profileRepo.List(ctx)
}

// SetRole assigns role to the user. Admins may change their own role.
func (s *userService) SetRole(ctx context.Context, caller *models.Session, userID string, role models.Role) (*models.Profile, error) {
	if err := s.authorizer.Require(caller, models.RoleAdmin); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	profile, err := s.profileRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user role updated",
		"user_id", userID,
		"role", role,
		"by", caller.UserID,
	)
	return profile, nil
}
