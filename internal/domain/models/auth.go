package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the JWT claims issued by the department's identity
// provider. The subject is the user id; name and role drive display and
// authorization.
type SessionClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Name                 string `json:"name"`
	Role                 string `json:"role"`
}

// GetUserID returns the user id from the JWT subject claim.
func (c *SessionClaims) GetUserID() string {
	return c.Subject
}

// Identity is the request-scoped caller identity built from verified claims.
type Identity struct {
	UserID      string
	DisplayName string
	Role        string
}
