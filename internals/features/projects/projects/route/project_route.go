package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	projectController "axflo_backend/internals/features/projects/projects/controller"
	"axflo_backend/internals/helpers/storage"
	authMw "axflo_backend/internals/middlewares/auth"
)

func ProjectPublicRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := projectController.NewProjectController(db, blob)

	r.Get("/projects", ctl.Public)
}

func ProjectAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := projectController.NewProjectController(db, blob)
	staff := func(h fiber.Handler) []fiber.Handler {
		return authMw.Tiered(db, constants.TierStaff, h)
	}

	r.Get("/admin-projects", staff(ctl.List)...)
	r.Post("/admin-projects", staff(ctl.Create)...)
	r.Get("/admin-projects/:id", staff(ctl.Detail)...)
	r.Post("/admin-projects/:id/edit", staff(ctl.Update)...)
	r.Post("/admin-projects/:id/delete", staff(ctl.Delete)...)
	r.Post("/admin-projects/:id/images", staff(ctl.AddImage)...)
	r.Post("/admin-projects/:id/images/:imageId/delete", staff(ctl.DeleteImage)...)
	r.Post("/admin-projects/:id/testimonials", staff(ctl.AddTestimonial)...)

	r.Post("/admin-testimonials/:id/approve", staff(ctl.ToggleApproval)...)
	r.Post("/admin-testimonials/:id/delete", staff(ctl.DeleteTestimonial)...)
}
