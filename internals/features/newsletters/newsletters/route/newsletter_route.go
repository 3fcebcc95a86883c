package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	newsletterController "axflo_backend/internals/features/newsletters/newsletters/controller"
	"axflo_backend/internals/middlewares"
	authMw "axflo_backend/internals/middlewares/auth"
)

func NewsletterPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newsletterController.NewNewsletterController(db)

	r.All("/newsletter/subscribe", middlewares.PublicFormRateLimiter(), ctl.Subscribe)
	r.Get("/newsletter/unsubscribe/:token", ctl.Unsubscribe)
}

func NewsletterAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := newsletterController.NewNewsletterController(db)
	staff := func(h fiber.Handler) []fiber.Handler {
		return authMw.Tiered(db, constants.TierStaff, h)
	}

	r.Get("/admin-subscribers", staff(ctl.ListSubscribers)...)
	r.Get("/admin-subscribers/export", staff(ctl.ExportSubscribers)...)
	r.All("/admin-subscribers/:id/toggle", staff(ctl.ToggleSubscriber)...)
	r.Post("/admin-subscribers/:id/delete", staff(ctl.DeleteSubscriber)...)

	r.Get("/admin-newsletters", staff(ctl.ListNewsletters)...)
	r.Get("/admin-newsletters/create", staff(ctl.CreateForm)...)
	r.Post("/admin-newsletters/create", staff(ctl.Create)...)
	r.Get("/admin-newsletters/:id/edit", staff(ctl.EditForm)...)
	r.Post("/admin-newsletters/:id/edit", staff(ctl.Update)...)
	r.Post("/admin-newsletters/:id/delete", staff(ctl.Delete)...)

	r.Get("/admin-newsletter-categories", staff(ctl.ListCategories)...)
	r.Post("/admin-newsletter-categories", staff(ctl.CreateCategory)...)
	r.Post("/admin-newsletter-categories/:id/delete", staff(ctl.DeleteCategory)...)
}
