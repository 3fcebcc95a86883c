package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	milestoneController "axflo_backend/internals/features/showcase/milestones/controller"
	"axflo_backend/internals/helpers/storage"
	authMw "axflo_backend/internals/middlewares/auth"
)

func MilestoneAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := milestoneController.NewMilestoneController(db, blob)
	staff := func(h fiber.Handler) []fiber.Handler {
		return authMw.Tiered(db, constants.TierStaff, h)
	}

	r.Get("/admin-milestones", staff(ctl.List)...)
	r.Post("/admin-milestones", staff(ctl.Actions().Handle)...)
}
