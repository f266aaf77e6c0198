// Package middleware provides HTTP middleware for the fiber app:
// bearer-token authentication and role checks.
package middleware

import (
	"strings"

	"accountsvc/internal/models"
	"accountsvc/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Authenticate validates the Authorization bearer token and stores the
// user claims in the request context.
func Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c)
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c)
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return utils.Unauthorized(c)
	}

	c.Locals("claims", claims)
	return c.Next()
}

// RequireRole rejects requests whose claims do not satisfy the role.
// Admins satisfy every role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok || claims == nil {
			return utils.Unauthorized(c)
		}
		if !claims.HasRole(role) {
			return utils.Forbidden(c)
		}
		return c.Next()
	}
}
