package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	contactController "axflo_backend/internals/features/contacts/contacts/controller"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/middlewares"
	authMw "axflo_backend/internals/middlewares/auth"
)

func ContactPublicRoutes(r fiber.Router, db *gorm.DB, notifier helpers.LeadNotifier) {
	ctl := contactController.NewContactController(db, notifier)

	r.Get("/contact", ctl.ContactPage)
	r.Post("/contact", middlewares.PublicFormRateLimiter(), ctl.Submit)
}

func ContactAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := contactController.NewContactController(db, nil)
	staff := func(h fiber.Handler) []fiber.Handler {
		return authMw.Tiered(db, constants.TierStaff, h)
	}

	r.Get("/admin-contacts", staff(ctl.List)...)
	r.Get("/admin-contacts/export", staff(ctl.Export)...)
	r.All("/admin-contacts/bulk-delete", staff(ctl.BulkDelete)...)
	r.Get("/admin-contact/:id", staff(ctl.Detail)...)
	r.Post("/admin-contact/:id", staff(ctl.Reply)...)
	r.All("/admin-contact/:id/toggle-read", staff(ctl.ToggleRead)...)
	r.Post("/admin-contact/:id/delete", staff(ctl.Delete)...)

	r.Get("/admin-inquiry-categories", staff(ctl.ListCategories)...)
	r.Post("/admin-inquiry-categories", staff(ctl.CreateCategory)...)
	r.Patch("/admin-inquiry-categories/:id", staff(ctl.UpdateCategory)...)
	r.Delete("/admin-inquiry-categories/:id", staff(ctl.DeleteCategory)...)
}
