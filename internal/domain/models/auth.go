package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims represents the JWT claims issued by the identity provider.
// Only the subject is consumed by this service; ownership authorization is
// the caller's concern.
type AuthClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AuthClaims) GetUserID() string {
	return c.Subject
}
