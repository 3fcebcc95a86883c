package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	articleController "axflo_backend/internals/features/blog/articles/controller"
	"axflo_backend/internals/helpers/storage"
	authMw "axflo_backend/internals/middlewares/auth"
)

func BlogPublicRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := articleController.NewArticleController(db, blob)

	r.Get("/media", ctl.Media)
	r.Get("/blog/:slug", ctl.Detail)
}

func BlogAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := articleController.NewArticleController(db, blob)
	staff := func(h fiber.Handler) []fiber.Handler {
		return authMw.Tiered(db, constants.TierStaff, h)
	}

	r.Get("/admin-blog", staff(ctl.List)...)
	r.Get("/admin-blog/create", staff(ctl.CreateForm)...)
	r.Post("/admin-blog/create", staff(ctl.Create)...)
	r.Get("/admin-blog/:id/edit", staff(ctl.EditForm)...)
	r.Post("/admin-blog/:id/edit", staff(ctl.Update)...)
	r.Post("/admin-blog/:id/delete", staff(ctl.Delete)...)

	r.Get("/admin-blog-categories", staff(ctl.ListCategories)...)
	r.Post("/admin-blog-categories", staff(ctl.SaveCategory)...)
}
