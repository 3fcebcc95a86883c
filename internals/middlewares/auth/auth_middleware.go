package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	"axflo_backend/internals/constants"
	authRepo "axflo_backend/internals/features/users/auth/repository"
	helpers "axflo_backend/internals/helpers"
)

// AuthMiddleware resolves the back-office session from the Bearer header or
// the access_token cookie. Failures go through deny (302 to the login page,
// or 401 JSON for XHR callers).
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return deny(c, fiber.StatusUnauthorized)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			configs.Log().Error("JWT_SECRET is empty")
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		if c.Locals("token_checked") == nil {
			bl, err := authRepo.IsBlacklisted(c.UserContext(), db, tokenString, secretKey)
			if err != nil {
				configs.Log().Error("blacklist check failed", zap.Error(err))
				return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if bl {
				return deny(c, fiber.StatusUnauthorized)
			}
			c.Locals("token_checked", true)
		}

		claims, err := helpers.ParseAccessToken(secretKey, tokenString)
		if err != nil {
			configs.Log().Debug("token parse failed", zap.Error(err))
			return deny(c, fiber.StatusUnauthorized)
		}
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return deny(c, fiber.StatusUnauthorized)
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return deny(c, fiber.StatusUnauthorized)
		}

		user, err := loadSessionUser(db, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				configs.Log().Error("session user lookup failed", zap.Error(err))
			}
			return deny(c, fiber.StatusUnauthorized)
		}
		if !user.IsActive {
			return deny(c, fiber.StatusUnauthorized)
		}

		storeSessionToLocals(c, user)
		helpers.SetRawAccessToken(c, tokenString)
		return c.Next()
	}
}

// deny answers a failed guard check.
func deny(c *fiber.Ctx, status int) error {
	if helpers.IsXHR(c) {
		msg := constants.ErrAuthRequired
		if status == fiber.StatusForbidden {
			msg = constants.ErrPermissionDenied
		}
		return c.Status(status).JSON(fiber.Map{
			"success":  false,
			"error":    msg,
			"redirect": constants.LoginPath,
		})
	}
	return c.Redirect(constants.LoginPath, fiber.StatusFound)
}
