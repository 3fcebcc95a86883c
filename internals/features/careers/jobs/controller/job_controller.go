package controller

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	"axflo_backend/internals/features/careers/jobs/dto"
	"axflo_backend/internals/features/careers/jobs/model"
	"axflo_backend/internals/features/careers/jobs/service"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const (
	postingsPerPage     = 15
	applicationsPerPage = 20
	careersPath         = "/admin-careers/"
)

type JobController struct {
	DB       *gorm.DB
	Blob     storage.BlobService
	Notifier helpers.LeadNotifier
}

func NewJobController(db *gorm.DB, blob storage.BlobService, notifier helpers.LeadNotifier) *JobController {
	return &JobController{DB: db, Blob: blob, Notifier: notifier}
}

/* =========================
   PUBLIC
========================= */

// GET /careers
func (jc *JobController) Careers(c *fiber.Ctx) error {
	rows, err := service.ActivePostings(c.UserContext(), jc.DB, 0)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"job_postings": dto.FromJobPostings(rows),
		"has_jobs":     len(rows) > 0,
	})
}

// POST /submit-job-application
// Always 200; the outcome is in success/message.
func (jc *JobController) SubmitApplication(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return helpers.PublicEnvelope(c, false, "Invalid request method.")
	}
	var req dto.JobApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.PublicEnvelope(c, false, service.MsgApplicationIncomplete)
	}
	resume, err := c.FormFile("resume")
	if err != nil {
		resume = nil
	}

	app, msg, err := service.SubmitApplication(c.UserContext(), jc.DB, jc.Blob, &req, resume)
	switch {
	case errors.Is(err, service.ErrApplicationIncomplete), errors.Is(err, service.ErrInvalidPosting):
		return helpers.PublicEnvelope(c, false, err.Error())
	case err != nil:
		configs.Log().Error("job application failed", zap.Error(err))
		return helpers.PublicEnvelope(c, false, service.MsgApplicationFailed)
	}

	helpers.NotifyAsync(jc.Notifier, helpers.LeadEvent{
		Kind:      "job_application",
		ID:        app.ID,
		Name:      app.FullName(),
		Email:     app.Email,
		Summary:   helpers.Excerpt(app.CoverLetter, 200),
		Extra:     map[string]any{"job_title": app.JobPosting.Title, "resume": jc.Blob.PublicURL(app.Resume)},
		CreatedAt: app.ApplicationDate,
	})
	return helpers.PublicEnvelope(c, true, msg)
}

/* =========================
   ADMIN POSTINGS
========================= */

// GET /admin-careers
func (jc *JobController) ListPostings(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := dto.PostingFilter{
		Status:     helpers.QueryTrim(c, "status"),
		Department: helpers.QueryTrim(c, "department"),
		Search:     helpers.QueryTrim(c, "search"),
	}
	if f.Status == "" {
		f.Status = "all"
	}

	rows, total, p, err := service.ListPostings(ctx, jc.DB, f, helpers.ResolvePaging(c, postingsPerPage, postingsPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	totals, err := service.CountPostings(ctx, jc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromJobPostings(rows), helpers.BuildPagination(total, p), fiber.Map{
		"status_filter":     f.Status,
		"department_filter": f.Department,
		"search_query":      f.Search,
		"total_jobs":        totals.Total,
		"active_jobs":       totals.Active,
		"inactive_jobs":     totals.Inactive,
		"employment_types":  dto.EmploymentTypeChoices(),
		"status_choices":    dto.JobStatusChoices(),
	})
}

// GET /admin-careers/create
func (jc *JobController) CreateForm(c *fiber.Ctx) error {
	return helpers.JsonOK(c, "ok", fiber.Map{"employment_types": dto.EmploymentTypeChoices()})
}

// POST /admin-careers/create
func (jc *JobController) CreatePosting(c *fiber.Ctx) error {
	var req dto.JobPostingRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, service.MsgPostingIncomplete)
	}
	p, err := service.CreatePosting(c.UserContext(), jc.DB, &req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, fmt.Sprintf("Job posting \"%s\" created successfully!", p.Title), fiber.Map{
		"job":      dto.FromJobPosting(p),
		"redirect": careersPath,
	})
}

// GET /admin-careers/:id/edit
func (jc *JobController) EditForm(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrPostingNotFound)
	}
	p, err := service.GetPosting(c.UserContext(), jc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"job":              dto.FromJobPosting(p),
		"employment_types": dto.EmploymentTypeChoices(),
		"status_choices":   dto.JobStatusChoices(),
	})
}

// POST /admin-careers/:id/edit
func (jc *JobController) UpdatePosting(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrPostingNotFound)
	}
	var req dto.JobPostingRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, service.MsgPostingIncomplete)
	}
	p, err := service.UpdatePosting(c.UserContext(), jc.DB, id, &req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonUpdated(c, fmt.Sprintf("Job posting \"%s\" updated successfully!", p.Title), fiber.Map{
		"job":      dto.FromJobPosting(p),
		"redirect": careersPath,
	})
}

// POST /admin-careers/:id/delete
func (jc *JobController) DeletePosting(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrPostingNotFound)
	}
	title, n, err := service.DeletePosting(c.UserContext(), jc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	msg := fmt.Sprintf("Job posting \"%s\" has been deleted successfully.", title)
	if n > 0 {
		msg = fmt.Sprintf("Job posting \"%s\" and %d associated application(s) have been deleted successfully.", title, n)
	}
	if helpers.IsXHR(c) {
		return helpers.AjaxMessage(c, msg)
	}
	return helpers.JsonDeleted(c, msg, fiber.Map{"id": id, "redirect": careersPath})
}

/* =========================
   ADMIN APPLICATIONS
========================= */

func applicationFilter(c *fiber.Ctx) dto.ApplicationFilter {
	f := dto.ApplicationFilter{
		Status: helpers.QueryTrim(c, "status"),
		Job:    helpers.QueryTrim(c, "job"),
		Search: helpers.QueryTrim(c, "search"),
	}
	if f.Status == "" {
		f.Status = "all"
	}
	if f.Job == "" {
		f.Job = "all"
	}
	return f
}

// GET /admin-applications
func (jc *JobController) ListApplications(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := applicationFilter(c)

	rows, total, p, err := service.ListApplications(ctx, jc.DB, f, helpers.ResolvePaging(c, applicationsPerPage, applicationsPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	counts, all, err := service.StatusCounts(ctx, jc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	jobs, err := service.PostingsByTitle(ctx, jc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromApplicationRows(rows), helpers.BuildPagination(total, p), fiber.Map{
		"status_filter":      f.Status,
		"job_filter":         f.Job,
		"search_query":       f.Search,
		"jobs":               dto.FromJobPostings(jobs),
		"total_applications": all,
		"new_applications":   counts[model.ApplicationSubmitted],
		"status_counts":      counts,
		"status_choices":     dto.ApplicationStatusChoices(),
	})
}

// GET /admin-applications/export
func (jc *JobController) ExportApplications(c *fiber.Ctx) error {
	rows, err := service.ExportApplications(c.UserContext(), jc.DB, applicationFilter(c))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	out := make([][]interface{}, 0, len(rows))
	for i := range rows {
		a := &rows[i]
		job := ""
		if a.JobPosting != nil {
			job = a.JobPosting.Title
		}
		out = append(out, []interface{}{
			a.ID, a.ApplicationDate, a.FullName(), a.Email, a.Phone, job,
			a.StatusDisplay(), a.ExperienceDisplay(), a.EducationDisplay(), jc.Blob.PublicURL(a.Resume),
		})
	}
	data, err := helpers.BuildXLSX("Applications", []string{
		"ID", "Applied", "Name", "Email", "Phone", "Position", "Status", "Experience", "Education", "Resume",
	}, out)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.SendXLSX(c, "applications", data)
}

// GET /admin-applications/:id
func (jc *JobController) ApplicationDetail(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrApplicationNotFound)
	}
	a, err := service.GetApplication(c.UserContext(), jc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{
		"application": dto.FromApplicationDetail(a, storage.URLOrNil(jc.Blob, a.Resume)),
	})
}

// POST /admin-applications/:id/status
// Body is JSON {"status": "..."}.
func (jc *JobController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrApplicationNotFound)
	}
	var req dto.ApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.AjaxFailStatus(c, fiber.StatusBadRequest, service.MsgInvalidStatus)
	}
	a, err := service.UpdateApplicationStatus(c.UserContext(), jc.DB, id, req.Status)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code == fiber.StatusBadRequest {
			return helpers.AjaxFailStatus(c, fiber.StatusBadRequest, fe.Message)
		}
		return helpers.FromFiberError(c, err)
	}
	return helpers.AjaxMessage(c, fmt.Sprintf("Application status updated to %s", a.StatusDisplay()))
}

// POST /admin-applications/:id/notes
func (jc *JobController) UpdateNotes(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrApplicationNotFound)
	}
	var req dto.ApplicationNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.AjaxFailStatus(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if _, err := service.UpdateApplicationNotes(c.UserContext(), jc.DB, id, req.Notes); err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.AjaxMessage(c, "Notes updated successfully")
}

// POST /admin-applications/:id/delete
func (jc *JobController) DeleteApplication(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrApplicationNotFound)
	}
	a, err := service.DeleteApplication(c.UserContext(), jc.DB, jc.Blob, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	job := ""
	if a.JobPosting != nil {
		job = a.JobPosting.Title
	}
	return helpers.AjaxMessage(c, fmt.Sprintf("Application from %s for %s has been deleted successfully.", a.FullName(), job))
}

/* =========================
   JOB CATEGORIES
========================= */

// GET /admin-job-categories
func (jc *JobController) ListCategories(c *fiber.Ctx) error {
	rows, err := service.ListJobCategories(c.UserContext(), jc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", dto.FromJobCategories(rows))
}

// POST /admin-job-categories
func (jc *JobController) CreateCategory(c *fiber.Ctx) error {
	var req dto.JobCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if fieldErrs := helpers.ValidateStruct(&req); fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	row, err := service.CreateJobCategory(c.UserContext(), jc.DB, &req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, fmt.Sprintf("Job category \"%s\" created successfully!", row.Name), row)
}

// DELETE /admin-job-categories/:id
func (jc *JobController) DeleteCategory(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrJobCategoryNotFound)
	}
	name, err := service.DeleteJobCategory(c.UserContext(), jc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonDeleted(c, fmt.Sprintf("Job category \"%s\" has been deleted successfully.", name), fiber.Map{"id": id})
}
