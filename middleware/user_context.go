// middleware/user_context.go
package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

const userIDLocal = "user_id"

// UserContextMiddleware extracts the authenticated player identity set by
// the Gateway. Every ranked route needs it: the acting player is always
// resolved from this header, never from the request body.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID missing on %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// UserID returns the player identity attached by UserContextMiddleware.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(userIDLocal).(string); ok {
		return v
	}
	return ""
}
