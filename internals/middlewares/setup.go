package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"axflo_backend/internals/configs"
	"axflo_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the shared stack: recover, access log, CORS and
// the global rate limiter (redis-backed when REDIS_URL is set).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())

	if url := configs.Cfg.RedisURL; url != "" {
		store, err := NewRedisStorageFromURL(url)
		if err != nil {
			configs.Log().Warn("⚠️ redis limiter storage unavailable, using memory", zap.Error(err))
		} else {
			UseLimiterStorage(store)
			configs.Log().Info("✅ rate limiter backed by redis")
		}
	}
	app.Use(GlobalRateLimiter())
}
