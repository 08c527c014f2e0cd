package handler

import (
	"log/slog"
	"net/http"

	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/services"
	"clipdeck/internal/httputil"
)

// UserHandler lists profiles and assigns roles
type UserHandler struct {
	userService services.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers returns every profile
// GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.userService.ListUsers(r.Context(), httputil.GetSession(r))
	if err != nil {
		logAndHandleError(w, h.logger, "failed to list users", err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profiles)
}

// SetRole changes a user's role
// PATCH /api/users/{id}/role
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := PathParam(w, r, "id", "User ID")
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.userService.SetRole(r.Context(), httputil.GetSession(r), userID, role)
	if err != nil {
		logAndHandleError(w, h.logger, "failed to set role", err, "user_id", userID)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}
