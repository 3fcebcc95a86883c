package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// limiterStorage is shared by every limiter; nil means Fiber's in-memory store.
var limiterStorage fiber.Storage

// UseLimiterStorage switches all limiters built afterwards to s.
func UseLimiterStorage(s fiber.Storage) {
	limiterStorage = s
}

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    limiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		},
	})
}

// Global limiter for every endpoint.
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(200, time.Minute, "Too many requests. Please try again later.")
}

// Login is stricter.
func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, time.Minute, "Too many login attempts. Please try again in a moment.")
}

func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "Too many registration attempts. Please wait a few minutes.")
}

// Public write paths: contact form, subscribe, job application.
func PublicFormRateLimiter() fiber.Handler {
	return newLimiter(10, 10*time.Minute, "Too many submissions. Please try again later.")
}
