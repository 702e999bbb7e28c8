package middleware

import (
	"log"
	"strings"

	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by AuthRequired.
const (
	LocalUsername    = "username"
	LocalRoles       = "roles"
	LocalBearerToken = "bearer_token"
)

// AuthRequired is a Fiber middleware that checks for a valid bearer token.
// On success it stores the username, the role set and the raw token in the
// request Locals; the raw token is what downstream calls forward.
func AuthRequired(verifier *services.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenString := parts[1]

		claims, err := verifier.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		username, _ := claims["username"].(string)
		c.Locals(LocalUsername, username)
		c.Locals(LocalRoles, services.RolesFromClaims(claims))
		c.Locals(LocalBearerToken, tokenString)

		return c.Next()
	}
}

// RequireRoles gates a route to callers holding at least one of the given
// roles. It must run after AuthRequired.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		held, _ := c.Locals(LocalRoles).([]string)
		for _, want := range roles {
			for _, have := range held {
				if have == want {
					return c.Next()
				}
			}
		}
		log.Printf("Access denied for user %v: requires one of %v, has %v", c.Locals(LocalUsername), roles, held)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied",
		})
	}
}
