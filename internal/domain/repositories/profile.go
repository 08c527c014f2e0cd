package repositories

import (
	"context"

	"clipdeck/internal/domain/models"
)

// ProfileRepository defines data access operations for profiles
type ProfileRepository interface {
	// GetByID returns domain.ErrNotFound when the user has no profile row yet
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// Create inserts a profile, filling timestamps
	Create(ctx context.Context, profile *models.Profile) error

	// List returns all profiles, newest first
	List(ctx context.Context) ([]models.Profile, error)

	// UpdateRole changes the role and returns the updated profile
	UpdateRole(ctx context.Context, id string, role models.Role) (*models.Profile, error)
}
