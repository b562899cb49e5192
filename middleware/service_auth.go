// middleware/service_auth.go
package middleware

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
)

// ServiceAuthMiddleware guards the /internal routes used by sibling
// services (score submission pipeline). Validates X-Service-Token against
// the shared SCORE_SERVICE_TOKEN.
func ServiceAuthMiddleware() fiber.Handler {
	expectedToken := os.Getenv("SCORE_SERVICE_TOKEN")
	if expectedToken == "" {
		log.Fatal("❌ SCORE_SERVICE_TOKEN is not set — internal endpoints cannot authenticate callers")
	}

	return func(c *fiber.Ctx) error {
		token := c.Get("X-Service-Token")
		if token == "" || token != expectedToken {
			log.Printf("🚫 [SERVICE_AUTH] Rejected internal call to %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid service token",
			})
		}
		return c.Next()
	}
}
