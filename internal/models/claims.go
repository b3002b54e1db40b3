package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the claims carried by the identity provider's session
// token. Subject is the opaque external user id.
type UserClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ExternalID returns the identity provider's user id.
func (c *UserClaims) ExternalID() string {
	return c.Subject
}
