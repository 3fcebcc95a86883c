package controller

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/features/showcase/portfolio/dto"
	"axflo_backend/internals/features/showcase/portfolio/service"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const portfolioPerPage = 12

type PortfolioController struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewPortfolioController(db *gorm.DB, blob storage.BlobService) *PortfolioController {
	return &PortfolioController{DB: db, Blob: blob}
}

func (pc *PortfolioController) imageURL(rel string) interface{} {
	return storage.URLOrNil(pc.Blob, rel)
}

// Actions wires the POST /admin-portfolio action endpoint.
func (pc *PortfolioController) Actions() *helpers.ActionRouter {
	return helpers.NewActionRouter("action").
		On("create", pc.Save).
		On("update", pc.Save).
		On("get", pc.Get).
		On("delete", pc.Delete).
		On("toggle_featured", pc.ToggleFeatured).
		On("bulk_action", pc.Bulk)
}

// GET /portfolio/:slug
func (pc *PortfolioController) PublicDetail(c *fiber.Ctx) error {
	p, err := service.PortfolioBySlug(c.UserContext(), pc.DB, c.Params("slug"))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{"project": dto.FromPublicPortfolio(p, pc.imageURL)})
}

// GET /admin-portfolio
func (pc *PortfolioController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := dto.Filter{
		Search:      helpers.QueryTrim(c, "search"),
		ProjectType: helpers.QueryTrim(c, "project_type"),
		Status:      helpers.QueryTrim(c, "status"),
		Year:        helpers.QueryTrim(c, "year"),
	}
	for _, v := range []*string{&f.ProjectType, &f.Status, &f.Year} {
		if *v == "" {
			*v = "all"
		}
	}

	rows, total, p, err := service.ListPortfolios(ctx, pc.DB, f, helpers.ResolvePaging(c, portfolioPerPage, portfolioPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	stats, err := service.CountPortfolios(ctx, pc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	years, err := service.AvailableYears(ctx, pc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromPortfolioRows(rows, pc.imageURL), helpers.BuildPagination(total, p), fiber.Map{
		"current_page":         "portfolio",
		"total_projects":       stats.Total,
		"featured_projects":    stats.Featured,
		"completed_projects":   stats.Completed,
		"total_value":          stats.Value,
		"available_years":      years,
		"search_query":         f.Search,
		"type_filter":          f.ProjectType,
		"status_filter":        f.Status,
		"year_filter":          f.Year,
		"project_type_choices": dto.ProjectTypeChoices(),
		"status_choices":       dto.StatusChoices(),
	})
}

func formFile(c *fiber.Ctx, key string) *multipart.FileHeader {
	fh, err := c.FormFile(key)
	if err != nil {
		return nil
	}
	return fh
}

// action=create|update
func (pc *PortfolioController) Save(c *fiber.Ctx) error {
	var req dto.PortfolioSaveRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.AjaxFail(c, "Invalid request body")
	}
	req.FeaturedOnHomepage = helpers.FormBool(c, "featured_on_homepage")
	up := service.Uploads{
		Featured: formFile(c, "featured_image"),
		Before:   formFile(c, "before_image"),
		After:    formFile(c, "after_image"),
	}

	_, created, err := service.SavePortfolio(c.UserContext(), pc.DB, pc.Blob, &req, up)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	if created {
		return helpers.AjaxMessage(c, service.MsgCreated)
	}
	return helpers.AjaxMessage(c, service.MsgUpdated)
}

func projectID(c *fiber.Ctx) (uint, error) {
	var req dto.ProjectIDRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, service.ErrNotFound
	}
	return service.ParseID(req.ProjectID)
}

// action=get
func (pc *PortfolioController) Get(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	p, err := service.GetPortfolio(c.UserContext(), pc.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{"project": dto.FromPortfolio(p, pc.imageURL)})
}

// action=delete
func (pc *PortfolioController) Delete(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	title, err := service.DeletePortfolio(c.UserContext(), pc.DB, pc.Blob, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxMessage(c, service.DeletedMessage(title))
}

// action=toggle_featured
func (pc *PortfolioController) ToggleFeatured(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	featured, err := service.ToggleFeatured(c.UserContext(), pc.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{"featured": featured})
}

// action=bulk_action
func (pc *PortfolioController) Bulk(c *fiber.Ctx) error {
	req := dto.BulkRequest{
		BulkAction: helpers.FormString(c, "bulk_action"),
		IDs:        helpers.FormUintList(c, "project_ids[]"),
	}
	msg, err := service.BulkAction(c.UserContext(), pc.DB, pc.Blob, req.BulkAction, req.IDs)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxMessage(c, msg)
}
