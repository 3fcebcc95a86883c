package controller

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/features/projects/projects/dto"
	"axflo_backend/internals/features/projects/projects/service"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const projectsPerPage = 20

type ProjectController struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewProjectController(db *gorm.DB, blob storage.BlobService) *ProjectController {
	return &ProjectController{DB: db, Blob: blob}
}

/* =========================
   PUBLIC
========================= */

// GET /projects?category=<id>
func (pc *ProjectController) Public(c *fiber.Ctx) error {
	var categoryID uint
	if v, err := strconv.ParseUint(helpers.QueryTrim(c, "category"), 10, 64); err == nil {
		categoryID = uint(v)
	}
	rows, err := service.PublicProjects(c.UserContext(), pc.DB, categoryID)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"projects":        dto.FromProjects(rows, pc.Blob.PublicURL),
		"category_filter": categoryID,
	})
}

/* =========================
   ADMIN
========================= */

// GET /admin-projects
func (pc *ProjectController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := dto.Filter{
		Status:   helpers.QueryTrim(c, "status"),
		Category: helpers.QueryTrim(c, "category"),
		Search:   helpers.QueryTrim(c, "search"),
	}
	if f.Status == "" {
		f.Status = "all"
	}
	if f.Category == "" {
		f.Category = "all"
	}

	rows, total, p, err := service.ListProjects(ctx, pc.DB, f, helpers.ResolvePaging(c, projectsPerPage, projectsPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	stats, err := service.CountProjects(ctx, pc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromProjects(rows, pc.Blob.PublicURL), helpers.BuildPagination(total, p), fiber.Map{
		"current_page":         "projects",
		"total_projects":       stats.Total,
		"featured_projects":    stats.Featured,
		"completed_projects":   stats.Completed,
		"in_progress_projects": stats.InProgress,
		"search_query":         f.Search,
		"status_filter":        f.Status,
		"category_filter":      f.Category,
		"status_choices":       dto.StatusChoices(),
	})
}

func (pc *ProjectController) projectID(c *fiber.Ctx) (uint, error) {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return 0, service.ErrNotFound
	}
	return id, nil
}

func parseProject(c *fiber.Ctx) (*dto.ProjectRequest, map[string][]string, error) {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, err
	}
	if !c.Is("json") {
		req.ProjectValue = helpers.FormFloatPtr(c, "project_value")
		req.Featured = helpers.FormBool(c, "featured")
	}
	req.Normalize()
	return &req, helpers.ValidateStruct(&req), nil
}

// POST /admin-projects
func (pc *ProjectController) Create(c *fiber.Ctx) error {
	req, fieldErrs, err := parseProject(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	p, err := service.CreateProject(c.UserContext(), pc.DB, req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, fmt.Sprintf("Project \"%s\" created successfully!", p.Name), fiber.Map{"id": p.ID})
}

// GET /admin-projects/:id
func (pc *ProjectController) Detail(c *fiber.Ctx) error {
	id, err := pc.projectID(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	p, err := service.GetProject(c.UserContext(), pc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"project":        dto.FromProject(p, pc.Blob.PublicURL),
		"status_choices": dto.StatusChoices(),
	})
}

// POST /admin-projects/:id/edit
func (pc *ProjectController) Update(c *fiber.Ctx) error {
	id, err := pc.projectID(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	req, fieldErrs, err := parseProject(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	p, err := service.UpdateProject(c.UserContext(), pc.DB, id, req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonUpdated(c, fmt.Sprintf("Project \"%s\" updated successfully!", p.Name), fiber.Map{"id": p.ID})
}

// POST /admin-projects/:id/delete
func (pc *ProjectController) Delete(c *fiber.Ctx) error {
	id, err := pc.projectID(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	name, err := service.DeleteProject(c.UserContext(), pc.DB, pc.Blob, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	msg := fmt.Sprintf("Project \"%s\" has been deleted successfully.", name)
	if helpers.IsXHR(c) {
		return helpers.AjaxMessage(c, msg)
	}
	return helpers.JsonDeleted(c, msg, fiber.Map{"id": id})
}

// POST /admin-projects/:id/images (multipart "image")
func (pc *ProjectController) AddImage(c *fiber.Ctx) error {
	id, err := pc.projectID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	req := dto.ProjectImageRequest{
		Caption:      helpers.FormString(c, "caption"),
		DisplayOrder: helpers.FormInt(c, "display_order", 0),
		IsFeatured:   helpers.FormBool(c, "is_featured"),
	}
	if fieldErrs := helpers.ValidateStruct(&req); fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		fh = nil
	}
	img, err := service.AddImage(c.UserContext(), pc.DB, pc.Blob, id, &req, fh)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{
		"message": "Image uploaded successfully!",
		"image": dto.ProjectImageDTO{
			ID:           img.ID,
			Image:        pc.Blob.PublicURL(img.Image),
			Caption:      img.Caption,
			DisplayOrder: img.DisplayOrder,
			IsFeatured:   img.IsFeatured,
		},
	})
}

// POST /admin-projects/:id/images/:imageId/delete
func (pc *ProjectController) DeleteImage(c *fiber.Ctx) error {
	id, err := pc.projectID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	imageID, err := helpers.ParseIDParam(c, "imageId")
	if err != nil {
		return helpers.AjaxFromError(c, service.ErrImageNotFound)
	}
	if err := service.DeleteImage(c.UserContext(), pc.DB, pc.Blob, id, imageID); err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxMessage(c, "Image deleted successfully!")
}

// POST /admin-projects/:id/testimonials
func (pc *ProjectController) AddTestimonial(c *fiber.Ctx) error {
	id, err := pc.projectID(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	var req dto.TestimonialRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if !c.Is("json") {
		req.Rating = helpers.FormInt(c, "rating", 0)
		req.Approved = helpers.FormBool(c, "approved")
	}
	req.Normalize()
	if fieldErrs := helpers.ValidateStruct(&req); fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	t, err := service.AddTestimonial(c.UserContext(), pc.DB, id, &req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, fmt.Sprintf("Testimonial from %s added successfully!", t.ClientName), dto.FromTestimonial(t))
}

// POST /admin-testimonials/:id/approve
func (pc *ProjectController) ToggleApproval(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.AjaxFromError(c, service.ErrTestimonialNotFound)
	}
	approved, err := service.ToggleApproval(c.UserContext(), pc.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{"approved": approved})
}

// POST /admin-testimonials/:id/delete
func (pc *ProjectController) DeleteTestimonial(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.AjaxFromError(c, service.ErrTestimonialNotFound)
	}
	name, err := service.DeleteTestimonial(c.UserContext(), pc.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxMessage(c, fmt.Sprintf("Testimonial from %s deleted successfully!", name))
}
