package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims represents the JWT claims structure from Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email        string                 `json:"email"`
	AppMetadata  map[string]interface{} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	Role         string                 `json:"role"` // "authenticated" or "anon"
	SessionID    string                 `json:"session_id"`
	IsAnonymous  bool                   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// Session is the immutable view of the caller attached to a request.
// Profile is nil until the profile row has been loaded.
type Session struct {
	UserID    string
	Email     string
	SessionID string
	Profile   *Profile
}

// HasRole reports whether the session's profile satisfies the required role.
// A session without a profile satisfies nothing.
func (s *Session) HasRole(required Role) bool {
	if s == nil {
		return false
	}
	return s.Profile.HasRole(required)
}

// CanEdit reports whether the session may use the editor and mutate slides.
func (s *Session) CanEdit() bool {
	return s.HasRole(RoleEditor)
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Profile != nil && s.Profile.Role == RoleAdmin
}

// AuthTokens is what the auth backend hands back after a password sign-in.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}
