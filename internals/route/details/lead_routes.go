package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	jobRoute "axflo_backend/internals/features/careers/jobs/route"
	contactRoute "axflo_backend/internals/features/contacts/contacts/route"
	newsletterRoute "axflo_backend/internals/features/newsletters/newsletters/route"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

// LeadPublicRoutes mounts the public write paths: contact form, job
// applications and newsletter subscriptions.
func LeadPublicRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService, notifier helpers.LeadNotifier) {
	contactRoute.ContactPublicRoutes(r, db, notifier)
	jobRoute.JobPublicRoutes(r, db, blob, notifier)
	newsletterRoute.NewsletterPublicRoutes(r, db)
}

func LeadAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	contactRoute.ContactAdminRoutes(r, db)
	jobRoute.JobAdminRoutes(r, db, blob)
	newsletterRoute.NewsletterAdminRoutes(r, db)
}
