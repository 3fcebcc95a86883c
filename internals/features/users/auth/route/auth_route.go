package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	"axflo_backend/internals/features/users/auth/controller"
	rateLimiter "axflo_backend/internals/middlewares"
	authMw "axflo_backend/internals/middlewares/auth"
)

func AuthRoutes(r fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	r.Get("/admin-login", authController.LoginStatus)
	r.Post("/admin-login", rateLimiter.LoginRateLimiter(), authController.Login)

	r.Get("/admin-register", authController.RegisterForm)
	r.Post("/admin-register", rateLimiter.RegisterRateLimiter(), authController.Register)

	r.All("/admin-logout", authMw.Tiered(db, constants.TierStaff, authController.Logout)...)
}
