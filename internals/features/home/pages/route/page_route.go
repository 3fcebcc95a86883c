package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	pageController "axflo_backend/internals/features/home/pages/controller"
	pageService "axflo_backend/internals/features/home/pages/service"
	"axflo_backend/internals/helpers/storage"
	authMw "axflo_backend/internals/middlewares/auth"
)

func PagePublicRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := pageController.NewPageController(db, blob)

	r.Get("/", ctl.Home)
	r.Get("/achievements", ctl.Achievements)
	for page := range pageService.StaticPages {
		r.Get("/"+page, ctl.Static(page))
	}
}

func PageAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := pageController.NewPageController(db, blob)

	r.Get("/admindashboard", authMw.Tiered(db, constants.TierStaff, ctl.Dashboard)...)
}
