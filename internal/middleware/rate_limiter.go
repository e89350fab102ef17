package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"alfredoptarigan/resume-ranker/internal/models"
)

// RateLimiter limits each client IP to max requests per sliding window.
// A max of zero disables limiting. API paths get a JSON 429, other paths
// plain text.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return max == 0
		},
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			if !strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests, please try again later.")
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "too many requests",
				Code:  fiber.StatusTooManyRequests,
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
