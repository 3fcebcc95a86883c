package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	achievementController "axflo_backend/internals/features/showcase/achievements/controller"
	"axflo_backend/internals/helpers/storage"
	authMw "axflo_backend/internals/middlewares/auth"
)

func AchievementAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := achievementController.NewAchievementController(db, blob)
	staff := func(h fiber.Handler) []fiber.Handler {
		return authMw.Tiered(db, constants.TierStaff, h)
	}

	r.Get("/admin-achievements", staff(ctl.List)...)
	r.Post("/admin-achievements", staff(ctl.Actions().Handle)...)

	r.Get("/admin-achievement-categories", staff(ctl.ListCategories)...)
	r.Post("/admin-achievement-categories", staff(ctl.CategoryActions().Handle)...)
}
