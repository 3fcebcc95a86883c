package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	blogRoute "axflo_backend/internals/features/blog/articles/route"
	contentRoute "axflo_backend/internals/features/home/contents/route"
	pageRoute "axflo_backend/internals/features/home/pages/route"
	"axflo_backend/internals/helpers/storage"
)

// HomePublicRoutes serves the marketing site: pages, editable content and
// the media/blog section.
func HomePublicRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	pageRoute.PagePublicRoutes(r, db, blob)
	contentRoute.ContentPublicRoutes(r, db, blob)
	blogRoute.BlogPublicRoutes(r, db, blob)
}

func HomeAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	pageRoute.PageAdminRoutes(r, db, blob)
	contentRoute.ContentAdminRoutes(r, db, blob)
	blogRoute.BlogAdminRoutes(r, db, blob)
}
