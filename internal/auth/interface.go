package auth

import "registratur/internal/domain/models"

// TokenVerifier defines the interface for session token verification. The
// abstraction keeps the middleware agnostic to how tokens are checked.
type TokenVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or badly signed.
	VerifyToken(tokenString string) (*models.SessionClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
