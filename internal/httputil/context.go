package httputil

import (
	"context"
	"net/http"

	"clipdeck/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey  contextKey = "userID"
	sessionKey contextKey = "session"
	tokenKey   contextKey = "accessToken"
)

// WithUserID adds userID to the request context
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// WithSession attaches the caller's session and its user ID
func WithSession(r *http.Request, session *models.Session, accessToken string) *http.Request {
	ctx := context.WithValue(r.Context(), sessionKey, session)
	ctx = context.WithValue(ctx, userIDKey, session.UserID)
	ctx = context.WithValue(ctx, tokenKey, accessToken)
	return r.WithContext(ctx)
}

// GetSession returns the caller's session, nil for anonymous requests
func GetSession(r *http.Request) *models.Session {
	session, _ := r.Context().Value(sessionKey).(*models.Session)
	return session
}

// GetAccessToken returns the bearer token the session was built from
func GetAccessToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}
