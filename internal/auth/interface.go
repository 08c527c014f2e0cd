package auth

import "clipdeck/internal/domain/models"

// JWTVerifier defines the interface for JWT token verification.
// The auth middleware depends on this and not on the JWKS details.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases any resources held by the verifier
	Close() error
}
