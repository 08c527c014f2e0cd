package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"clipdeck/internal/config"
	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/repositories"
	"clipdeck/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// User-facing texts for the auth backend's rejections
const (
	MsgAccountExists      = "An account with this email already exists. Please sign in instead."
	MsgInvalidCredentials = "Invalid email or password. Please check your credentials and try again."
	MsgEmailNotConfirmed  = "Please check your email and confirm your account before signing in."
	MsgMissingFields      = "Please fill in all fields"
	MsgPasswordTooShort   = "Password must be at least 6 characters long"
)

type sessionService struct {
	idp         services.IdentityProvider
	profileRepo repositories.ProfileRepository
	logger      *slog.Logger
}

// NewSessionService creates the sign-in/sign-up/sign-out service and the
// session loader used by the auth middleware.
func NewSessionService(
	idp services.IdentityProvider,
	profileRepo repositories.ProfileRepository,
	logger *slog.Logger,
) services.SessionService {
	return &sessionService{
		idp:         idp,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// SignIn exchanges credentials for tokens
func (s *sessionService) SignIn(ctx context.Context, creds *services.Credentials) (*models.AuthTokens, error) {
	email, err := validateCredentials(creds)
	if err != nil {
		return nil, err
	}

	tokens, err := s.idp.SignInWithPassword(ctx, email, creds.Password)
	if err != nil {
		return nil, mapSignInError(err)
	}

	s.logger.Info("user signed in", "user_id", tokens.UserID)
	return tokens, nil
}

// SignUp registers an account. The profile row is created on first session load.
func (s *sessionService) SignUp(ctx context.Context, creds *services.Credentials) error {
	email, err := validateCredentials(creds)
	if err != nil {
		return err
	}

	if err := s.idp.SignUp(ctx, email, creds.Password); err != nil {
		return mapSignUpError(err)
	}

	s.logger.Info("user signed up", "email", email)
	return nil
}

// SignOut revokes the caller's session at the auth backend
func (s *sessionService) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return fmt.Errorf("no session: %w", domain.ErrUnauthorized)
	}
	return s.idp.SignOut(ctx, accessToken)
}

// LoadSession resolves the caller's profile, creating it as VIEWER on first login.
func (s *sessionService) LoadSession(ctx context.Context, claims *models.SupabaseClaims) (*models.Session, error) {
	userID := claims.GetUserID()

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		profile, err = s.createProfile(ctx, userID, claims.Email)
	}
	if err != nil {
		return nil, err
	}

	return &models.Session{
		UserID:    userID,
		Email:     claims.Email,
		SessionID: claims.SessionID,
		Profile:   profile,
	}, nil
}

func (s *sessionService) createProfile(ctx context.Context, userID, email string) (*models.Profile, error) {
	profile := &models.Profile{
		ID:    userID,
		Email: normalizeEmail(email),
		Role:  models.RoleViewer,
	}

	err := s.profileRepo.Create(ctx, profile)
	if errors.Is(err, domain.ErrConflict) {
		// another request for the same user created it first
		return s.profileRepo.GetByID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile created",
		"user_id", userID,
		"role", profile.Role,
	)
	return profile, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateCredentials normalises the email and checks the form rules.
func validateCredentials(creds *services.Credentials) (string, error) {
	email := normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrValidation, MsgMissingFields)
	}

	err := validation.Errors{
		"email": validation.Validate(email, is.EmailFormat),
		"password": validation.Validate(creds.Password,
			validation.Length(config.MinPasswordLength, 0).Error(MsgPasswordTooShort),
		),
	}.Filter()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return email, nil
}

func mapSignInError(err error) error {
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		return err
	}
	switch {
	case strings.Contains(authErr.Raw, "Invalid login credentials"):
		return &domain.AuthError{Message: MsgInvalidCredentials, Raw: authErr.Raw, Status: http.StatusUnauthorized}
	case strings.Contains(authErr.Raw, "Email not confirmed"):
		return &domain.AuthError{Message: MsgEmailNotConfirmed, Raw: authErr.Raw, Status: http.StatusForbidden}
	default:
		return authErr
	}
}

func mapSignUpError(err error) error {
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		return err
	}
	if strings.Contains(authErr.Raw, "already registered") {
		return &domain.AuthError{Message: MsgAccountExists, Raw: authErr.Raw, Status: http.StatusConflict}
	}
	return authErr
}
