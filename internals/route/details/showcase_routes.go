package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	projectRoute "axflo_backend/internals/features/projects/projects/route"
	achievementRoute "axflo_backend/internals/features/showcase/achievements/route"
	milestoneRoute "axflo_backend/internals/features/showcase/milestones/route"
	portfolioRoute "axflo_backend/internals/features/showcase/portfolio/route"
	"axflo_backend/internals/helpers/storage"
)

func ShowcasePublicRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	portfolioRoute.PortfolioPublicRoutes(r, db, blob)
	projectRoute.ProjectPublicRoutes(r, db, blob)
}

func ShowcaseAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	achievementRoute.AchievementAdminRoutes(r, db, blob)
	portfolioRoute.PortfolioAdminRoutes(r, db, blob)
	milestoneRoute.MilestoneAdminRoutes(r, db, blob)
	projectRoute.ProjectAdminRoutes(r, db, blob)
}
