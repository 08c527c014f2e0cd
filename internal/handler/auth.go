package handler

import (
	"log/slog"
	"net/http"

	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/services"
	"clipdeck/internal/httputil"
)

// AuthHandler proxies password auth and reports the caller's session
type AuthHandler struct {
	sessions services.SessionService
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions services.SessionService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// SessionResponse is the caller's profile plus where the UI should send them
type SessionResponse struct {
	Profile *models.Profile `json:"profile"`
	Landing string          `json:"landing"`
	CanEdit bool            `json:"can_edit"`
	IsAdmin bool            `json:"is_admin"`
}

// SignInResponse carries the tokens and the landing page of the user's role
type SignInResponse struct {
	*models.AuthTokens
	Landing string `json:"landing"`
}

// SignIn exchanges email and password for tokens
// POST /api/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var creds services.Credentials
	if err := httputil.ParseJSON(w, r, &creds); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens, err := h.sessions.SignIn(r.Context(), &creds)
	if err != nil {
		logAndHandleError(w, h.logger, "sign in failed", err)
		return
	}

	// The landing page comes from the profile, which may not exist yet
	landing := models.RoleViewer.Landing()
	claims := &models.SupabaseClaims{Email: tokens.Email}
	claims.Subject = tokens.UserID
	session, err := h.sessions.LoadSession(r.Context(), claims)
	if err != nil {
		h.logger.Warn("failed to load profile after sign in", "user_id", tokens.UserID, "error", err)
	} else if session.Profile != nil {
		landing = session.Profile.Role.Landing()
	}

	httputil.RespondJSON(w, http.StatusOK, SignInResponse{AuthTokens: tokens, Landing: landing})
}

// SignUp registers a new account. The account still needs email confirmation.
// POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var creds services.Credentials
	if err := httputil.ParseJSON(w, r, &creds); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.sessions.SignUp(r.Context(), &creds); err != nil {
		logAndHandleError(w, h.logger, "sign up failed", err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "Check your email to confirm your account",
	})
}

// SignOut revokes the caller's session
// POST /api/auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(r.Context(), httputil.GetAccessToken(r)); err != nil {
		logAndHandleError(w, h.logger, "sign out failed", err)
		return
	}

	httputil.RespondNoContent(w)
}

// GetSession returns the caller's profile and landing page
// GET /api/session
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := httputil.GetSession(r)
	if session == nil || session.Profile == nil {
		httputil.RespondErrorWithExtras(w, http.StatusUnauthorized, "authentication required", map[string]interface{}{
			"redirect": models.LoginPath,
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, SessionResponse{
		Profile: session.Profile,
		Landing: session.Profile.Role.Landing(),
		CanEdit: session.CanEdit(),
		IsAdmin: session.IsAdmin(),
	})
}
