package services

import (
	"context"

	"clipdeck/internal/domain/models"
)

// Authorizer decides whether a session may perform an action that needs a role.
// Implementations return a *domain.RoleError (matching domain.ErrForbidden)
// for authenticated callers below the required role, and domain.ErrUnauthorized
// for a nil session.
type Authorizer interface {
	Require(caller *models.Session, role models.Role) error
}

// Credentials is the sign-in / sign-up form
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IdentityProvider is the password auth backend. Rejections come back as
// *domain.AuthError carrying the backend's raw message.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.AuthTokens, error)
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context, accessToken string) error
}

// SessionService wraps the auth backend and the profiles table.
type SessionService interface {
	SignIn(ctx context.Context, creds *Credentials) (*models.AuthTokens, error)
	SignUp(ctx context.Context, creds *Credentials) error
	SignOut(ctx context.Context, accessToken string) error

	// LoadSession resolves the profile for verified claims, creating a
	// VIEWER profile on first sight of a user.
	LoadSession(ctx context.Context, claims *models.SupabaseClaims) (*models.Session, error)
}
