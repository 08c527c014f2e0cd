package auth

import (
	"fmt"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
)

// RoleAuthorizer implements services.Authorizer with the fixed role
// hierarchy VIEWER < EDITOR < ADMIN. Resources are not owned: any caller with
// a sufficient role may act on any project, presentation or slide.
type RoleAuthorizer struct{}

// NewRoleAuthorizer creates a new role-based authorizer
func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{}
}

// Require returns nil when the caller's role satisfies role
func (a *RoleAuthorizer) Require(caller *models.Session, role models.Role) error {
	if caller == nil || caller.Profile == nil {
		return fmt.Errorf("sign in required: %w", domain.ErrUnauthorized)
	}
	if caller.HasRole(role) {
		return nil
	}
	return &domain.RoleError{
		Required: string(role),
		Actual:   string(caller.Profile.Role),
		Landing:  caller.Profile.Role.Landing(),
	}
}
