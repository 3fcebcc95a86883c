package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	contentController "axflo_backend/internals/features/home/contents/controller"
	"axflo_backend/internals/helpers/storage"
	authMw "axflo_backend/internals/middlewares/auth"
)

func ContentPublicRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := contentController.NewContentController(db, blob)

	r.Get("/content/:page", ctl.PublicPage)
	r.Get("/company-info", ctl.PublicCompanyInfo)
	r.Get("/service-descriptions", ctl.PublicServices)
	r.Get("/service-descriptions/:slug", ctl.PublicService)
}

func ContentAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := contentController.NewContentController(db, blob)
	staff := func(h fiber.Handler) []fiber.Handler {
		return authMw.Tiered(db, constants.TierStaff, h)
	}

	r.Get("/admin-content", staff(ctl.ListContent)...)
	r.Post("/admin-content", staff(ctl.SaveContent)...)
	r.Post("/admin-content/:id/delete", staff(ctl.DeleteContent)...)

	r.Get("/admin-services", staff(ctl.ListServices)...)
	r.Post("/admin-services", staff(ctl.CreateService)...)
	r.Get("/admin-services/:id", staff(ctl.GetService)...)
	r.Post("/admin-services/:id/edit", staff(ctl.UpdateService)...)
	r.Post("/admin-services/:id/delete", staff(ctl.DeleteService)...)

	r.Get("/admin-company-info", staff(ctl.GetCompanyInfo)...)
	r.Post("/admin-company-info", staff(ctl.CreateCompanyInfo)...)
	r.Post("/admin-company-info/edit", staff(ctl.UpdateCompanyInfo)...)
}
