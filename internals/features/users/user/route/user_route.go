package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	userController "axflo_backend/internals/features/users/user/controller"
	authMw "axflo_backend/internals/middlewares/auth"
)

// UserAdminRoutes mounts the users screen and the self-service profile
// pages. Every route requires a staff session; the superuser rule for other
// accounts is applied inside the controller.
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)
	staff := func(h fiber.Handler) []fiber.Handler {
		return authMw.Tiered(db, constants.TierStaff, h)
	}

	r.Get("/admin-users", staff(ctl.ListUsers)...)
	r.Get("/admin-users/:id", staff(ctl.GetUser)...)
	r.Post("/admin-users/:id/edit", staff(ctl.UpdateUser)...)
	r.Post("/admin-users/:id/delete", staff(ctl.DeleteUser)...)

	r.Get("/admin-profile-view", staff(ctl.ProfileView)...)
	r.Get("/admin-profile-edit", staff(ctl.ProfileEditForm)...)
	r.Post("/admin-profile-edit", staff(ctl.ProfileEdit)...)
	r.Get("/admin-profile-password", staff(ctl.PasswordForm)...)
	r.Post("/admin-profile-password", staff(ctl.PasswordChange)...)
	r.Get("/admin-profile-delete", staff(ctl.DeleteForm)...)
	r.Post("/admin-profile-delete", staff(ctl.ProfileDelete)...)
}
