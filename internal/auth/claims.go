package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the token payload accepted by the API
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Scope string `json:"scope,omitempty"`
}

// GetUserID returns the user ID from the JWT subject claim
func (c *Claims) GetUserID() string {
	return c.Subject
}
