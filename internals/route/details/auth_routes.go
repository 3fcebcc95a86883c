package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "axflo_backend/internals/features/users/auth/route"
	userRoute "axflo_backend/internals/features/users/user/route"
)

// AuthRoutes mounts login/register/logout plus the users and profile screens.
func AuthRoutes(app fiber.Router, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)
	userRoute.UserAdminRoutes(app, db)
}
