package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var (
		roleErr     *domain.RoleError
		authErr     *domain.AuthError
		conflictErr *domain.ConflictError
	)

	switch {
	case errors.As(err, &roleErr):
		httputil.RespondErrorWithExtras(w, http.StatusForbidden, "insufficient role", map[string]interface{}{
			"redirect": roleErr.Landing,
			"required": roleErr.Required,
			"role":     roleErr.Actual,
		})
	case errors.As(err, &authErr):
		httputil.RespondError(w, authErr.StatusCode(), authErr.Message)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondErrorWithExtras(w, http.StatusUnauthorized, err.Error(), map[string]interface{}{
			"redirect": models.LoginPath,
		})
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case errors.Is(err, domain.ErrUpstream):
		httputil.RespondError(w, http.StatusBadGateway, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// logAndHandleError logs unexpected failures before responding
func logAndHandleError(w http.ResponseWriter, logger *slog.Logger, msg string, err error, attrs ...any) {
	if isUnexpected(err) {
		logger.Error(msg, append(attrs, "error", err)...)
	}
	handleError(w, err)
}

func isUnexpected(err error) bool {
	var authErr *domain.AuthError
	return !errors.As(err, &authErr) &&
		!errors.Is(err, domain.ErrValidation) &&
		!errors.Is(err, domain.ErrNotFound) &&
		!errors.Is(err, domain.ErrUnauthorized) &&
		!errors.Is(err, domain.ErrForbidden) &&
		!errors.Is(err, domain.ErrConflict)
}

// PathParam reads a required path wildcard, responding 400 when it is empty
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}
