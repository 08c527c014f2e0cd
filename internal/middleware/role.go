package middleware

import (
	"net/http"

	"clipdeck/internal/domain/models"
	"clipdeck/internal/httputil"
)

// RequireRole gates a route on the caller's role.
//
//   - no session: 401, redirect to the login page
//   - role too low: 403, redirect to the landing page of the caller's own role
func RequireRole(required models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := httputil.GetSession(r)
			if session == nil {
				respondUnauthorized(w, "authentication required")
				return
			}

			if !session.HasRole(required) {
				var actual models.Role
				if session.Profile != nil {
					actual = session.Profile.Role
				}
				httputil.RespondErrorWithExtras(w, http.StatusForbidden, "insufficient role", map[string]interface{}{
					"redirect": actual.Landing(),
					"required": required,
					"role":     actual,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Chain applies middlewares so the first one listed runs outermost
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
