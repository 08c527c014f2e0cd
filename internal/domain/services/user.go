package services

import (
	"context"

	"clipdeck/internal/domain/models"
)

// UserService manages profiles. Only role assignment is exposed.
type UserService interface {
	ListUsers(ctx context.Context, caller *models.Session) ([]models.Profile, error)
	SetRole(ctx context.Context, caller *models.Session, userID string, role models.Role) (*models.Profile, error)
}
