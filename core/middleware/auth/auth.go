package auth

import (
	"strings"

	"disasterhub/core/token"

	"github.com/gofiber/fiber/v2"
)

const localsKey = "auth_user"

// New returns a middleware that requires a valid Bearer token.
// The decoded claims are stored in the request locals for UserFrom.
func New(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		c.Locals(localsKey, claims)
		return c.Next()
	}
}

// RequireRole returns a middleware that rejects requests whose authenticated
// role is not in the allowed set. It must run after New.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := UserFrom(c)
		if claims != nil {
			for _, role := range allowed {
				if claims.Role == role {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: insufficient role"})
	}
}

// UserFrom returns the authenticated user's claims, or nil when the request
// did not pass through New.
func UserFrom(c *fiber.Ctx) *token.Claims {
	claims, _ := c.Locals(localsKey).(*token.Claims)
	return claims
}
