package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	portfolioController "axflo_backend/internals/features/showcase/portfolio/controller"
	"axflo_backend/internals/helpers/storage"
	authMw "axflo_backend/internals/middlewares/auth"
)

func PortfolioPublicRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := portfolioController.NewPortfolioController(db, blob)

	r.Get("/portfolio/:slug", ctl.PublicDetail)
}

func PortfolioAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := portfolioController.NewPortfolioController(db, blob)
	staff := func(h fiber.Handler) []fiber.Handler {
		return authMw.Tiered(db, constants.TierStaff, h)
	}

	r.Get("/admin-portfolio", staff(ctl.List)...)
	r.Post("/admin-portfolio", staff(ctl.Actions().Handle)...)
}
