package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
	routeDetails "axflo_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mounts every feature on the root router. Admin routes carry
// their own auth chain, so there is no separate group. Uploaded media is
// served last so page routes such as /media win over the file handler.
func SetupRoutes(app *fiber.App, db *gorm.DB, blob storage.BlobService) {
	startTime = time.Now()
	log := configs.Log()

	log.Info("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	log.Info("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	notifier := helpers.NewLeadNotifier(configs.Cfg.ContactWebhookURL)

	log.Info("[INFO] Mounting public routes...")
	routeDetails.HomePublicRoutes(app, db, blob)
	routeDetails.LeadPublicRoutes(app, db, blob, notifier)
	routeDetails.ShowcasePublicRoutes(app, db, blob)

	log.Info("[INFO] Mounting admin routes...")
	routeDetails.HomeAdminRoutes(app, db, blob)
	routeDetails.LeadAdminRoutes(app, db, blob)
	routeDetails.ShowcaseAdminRoutes(app, db, blob)

	app.Static(configs.Cfg.MediaURL, configs.Cfg.MediaRoot, fiber.Static{
		ByteRange: true,
		MaxAge:    3600,
	})
}
