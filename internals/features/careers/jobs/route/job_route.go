package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	jobController "axflo_backend/internals/features/careers/jobs/controller"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
	"axflo_backend/internals/middlewares"
	authMw "axflo_backend/internals/middlewares/auth"
)

func JobPublicRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService, notifier helpers.LeadNotifier) {
	ctl := jobController.NewJobController(db, blob, notifier)

	r.Get("/careers", ctl.Careers)
	r.All("/submit-job-application", middlewares.PublicFormRateLimiter(), ctl.SubmitApplication)
}

func JobAdminRoutes(r fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctl := jobController.NewJobController(db, blob, nil)
	staff := func(h fiber.Handler) []fiber.Handler {
		return authMw.Tiered(db, constants.TierStaff, h)
	}

	r.Get("/admin-careers", staff(ctl.ListPostings)...)
	r.Get("/admin-careers/create", staff(ctl.CreateForm)...)
	r.Post("/admin-careers/create", staff(ctl.CreatePosting)...)
	r.Get("/admin-careers/:id/edit", staff(ctl.EditForm)...)
	r.Post("/admin-careers/:id/edit", staff(ctl.UpdatePosting)...)
	r.Post("/admin-careers/:id/delete", staff(ctl.DeletePosting)...)

	r.Get("/admin-applications", staff(ctl.ListApplications)...)
	r.Get("/admin-applications/export", staff(ctl.ExportApplications)...)
	r.Get("/admin-applications/:id", staff(ctl.ApplicationDetail)...)
	r.Post("/admin-applications/:id/status", staff(ctl.UpdateStatus)...)
	r.Post("/admin-applications/:id/notes", staff(ctl.UpdateNotes)...)
	r.Post("/admin-applications/:id/delete", staff(ctl.DeleteApplication)...)

	r.Get("/admin-job-categories", staff(ctl.ListCategories)...)
	r.Post("/admin-job-categories", staff(ctl.CreateCategory)...)
	r.Delete("/admin-job-categories/:id", staff(ctl.DeleteCategory)...)
}
