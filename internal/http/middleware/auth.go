package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docshelf/internal/auth"
)

const (
	// UserIDLocalKey is the key used to store the caller's user ID in Fiber's context locals.
	UserIDLocalKey = "user_id"
	// UserEmailLocalKey is the key used to store the caller's email in Fiber's context locals.
	UserEmailLocalKey = "user_email"
)

// Auth is a middleware that validates the bearer token on every request.
//
// Behavior:
// - Reads the Authorization header ("Bearer <jwt>").
// - Validates signature, expiry, and signing method.
// - Stores the caller's user ID and email in Fiber context locals.
// - Rejects with 401 otherwise; handlers behind it can rely on UserID(c).
func Auth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization format")
		}

		claims, err := auth.ParseToken(parts[1], jwtSecret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(UserIDLocalKey, claims.UserID)
		c.Locals(UserEmailLocalKey, claims.Email)

		return c.Next()
	}
}

// UserID extracts the authenticated caller's ID previously stored by Auth.
// Returns "" if the request did not pass through the middleware.
func UserID(c *fiber.Ctx) string {
	if v := c.Locals(UserIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
