package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// CronMiddleware zamanlayıcı endpoint'lerini paylaşılan secret ile korur.
// Secret boşsa endpoint'ler kapalıdır.
func CronMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "Scheduled jobs are disabled",
			})
		}

		header := c.Get("X-Cron-Secret")
		if subtle.ConstantTimeCompare([]byte(header), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid cron secret",
			})
		}

		return c.Next()
	}
}
