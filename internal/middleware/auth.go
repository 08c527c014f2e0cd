package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"clipdeck/internal/auth"
	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/services"
	"clipdeck/internal/httputil"
)

// Auth resolves the bearer token into a session. Requests without a token
// pass through anonymously so public routes keep working; RequireRole
// rejects them where a role is needed. A token that fails verification is
// rejected immediately.
//
// EventSource clients cannot set headers, so GET requests may carry the
// token in the access_token query parameter instead.
func Auth(verifier auth.JWTVerifier, sessions services.SessionService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			session, err := sessions.LoadSession(r.Context(), claims)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					respondUnauthorized(w, err.Error())
					return
				}
				logger.Error("failed to load session",
					"user_id", claims.Subject,
					"error", err,
				)
				httputil.RespondError(w, http.StatusInternalServerError, "failed to load profile")
				return
			}

			next.ServeHTTP(w, httputil.WithSession(r, session, token))
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if r.Method == http.MethodGet {
		return r.URL.Query().Get("access_token")
	}
	return ""
}

func respondUnauthorized(w http.ResponseWriter, detail string) {
	httputil.RespondErrorWithExtras(w, http.StatusUnauthorized, detail, map[string]interface{}{
		"redirect": models.LoginPath,
	})
}
