package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload carried on every authenticated request.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// HasRole reports whether the claims satisfy the required role.
// Admins satisfy every role.
func (c *UserClaims) HasRole(role string) bool {
	if c.Role == RoleAdmin {
		return true
	}
	return c.Role == role
}
