package controller

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"axflo_backend/internals/features/home/contents/dto"
	"axflo_backend/internals/features/home/contents/service"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

type ContentController struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewContentController(db *gorm.DB, blob storage.BlobService) *ContentController {
	return &ContentController{DB: db, Blob: blob}
}

func (cc *ContentController) imageURL(rel string) interface{} {
	return storage.URLOrNil(cc.Blob, rel)
}

/* =========================
   PUBLIC
========================= */

// GET /content/:page
func (cc *ContentController) PublicPage(c *fiber.Ctx) error {
	page := c.Params("page")
	rows, err := service.PageSections(c.UserContext(), cc.DB, page)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{"page": page, "sections": dto.SectionMap(rows)})
}

// GET /company-info
func (cc *ContentController) PublicCompanyInfo(c *fiber.Ctx) error {
	row, err := service.CompanyInfo(c.UserContext(), cc.DB)
	if errors.Is(err, service.ErrCompanyInfoNone) {
		return helpers.JsonOK(c, "ok", nil)
	}
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", row)
}

// GET /service-descriptions
func (cc *ContentController) PublicServices(c *fiber.Ctx) error {
	rows, err := service.ActiveServices(c.UserContext(), cc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", dto.FromServices(rows, cc.imageURL))
}

// GET /service-descriptions/:slug
func (cc *ContentController) PublicService(c *fiber.Ctx) error {
	row, err := service.ServiceBySlug(c.UserContext(), cc.DB, c.Params("slug"))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", dto.FromService(row, cc.imageURL))
}

/* =========================
   PAGE CONTENT
========================= */

// GET /admin-content?page=
func (cc *ContentController) ListContent(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := helpers.QueryTrim(c, "page")
	if page == "" {
		page = "all"
	}
	rows, err := service.ListPageContents(ctx, cc.DB, page)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	pages, err := service.PageNames(ctx, cc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"current_page": "content",
		"contents":     dto.FromPageContents(rows),
		"pages":        pages,
		"page_filter":  page,
	})
}

// POST /admin-content
func (cc *ContentController) SaveContent(c *fiber.Ctx) error {
	var req dto.PageContentRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if fieldErrs := helpers.ValidateStruct(&req); fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	editor, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		editor = uuid.Nil
	}
	row, created, err := service.UpsertPageContent(c.UserContext(), cc.DB, editor, &req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if created {
		return helpers.JsonCreated(c, fmt.Sprintf("Content %s/%s created successfully!", row.PageName, row.Section), dto.FromPageContent(row))
	}
	return helpers.JsonUpdated(c, fmt.Sprintf("Content %s/%s updated successfully!", row.PageName, row.Section), dto.FromPageContent(row))
}

// POST /admin-content/:id/delete
func (cc *ContentController) DeleteContent(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrContentNotFound)
	}
	row, err := service.DeletePageContent(c.UserContext(), cc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonDeleted(c, fmt.Sprintf("Content %s/%s deleted successfully.", row.PageName, row.Section), fiber.Map{"id": id})
}

/* =========================
   SERVICES
========================= */

// GET /admin-services
func (cc *ContentController) ListServices(c *fiber.Ctx) error {
	search := helpers.QueryTrim(c, "search")
	rows, err := service.ListServices(c.UserContext(), cc.DB, search)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"current_page": "services",
		"services":     dto.FromServices(rows, cc.imageURL),
		"search_query": search,
	})
}

// GET /admin-services/:id
func (cc *ContentController) GetService(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrServiceNotFound)
	}
	row, err := service.GetService(c.UserContext(), cc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", dto.FromService(row, cc.imageURL))
}

func (cc *ContentController) saveService(c *fiber.Ctx, id uint) error {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if !c.Is("json") {
		req.Order = helpers.FormInt(c, "order", 0)
		req.Active = helpers.FormBool(c, "active")
	}
	req.Normalize()
	if fieldErrs := helpers.ValidateStruct(&req); fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	image, err := c.FormFile("main_image")
	if err != nil {
		image = nil
	}
	row, err := service.SaveService(c.UserContext(), cc.DB, cc.Blob, id, &req, image)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if id == 0 {
		return helpers.JsonCreated(c, fmt.Sprintf("Service \"%s\" created successfully!", row.ServiceName), dto.FromService(row, cc.imageURL))
	}
	return helpers.JsonUpdated(c, fmt.Sprintf("Service \"%s\" updated successfully!", row.ServiceName), dto.FromService(row, cc.imageURL))
}

// POST /admin-services
func (cc *ContentController) CreateService(c *fiber.Ctx) error {
	return cc.saveService(c, 0)
}

// POST /admin-services/:id/edit
func (cc *ContentController) UpdateService(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrServiceNotFound)
	}
	return cc.saveService(c, id)
}

// POST /admin-services/:id/delete
func (cc *ContentController) DeleteService(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrServiceNotFound)
	}
	name, err := service.DeleteService(c.UserContext(), cc.DB, cc.Blob, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonDeleted(c, fmt.Sprintf("Service \"%s\" deleted successfully.", name), fiber.Map{"id": id})
}

/* =========================
   COMPANY INFO
========================= */

func parseCompanyInfo(c *fiber.Ctx) (*dto.CompanyInfoRequest, map[string][]string, error) {
	var req dto.CompanyInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, err
	}
	if !c.Is("json") {
		req.FoundedYear = helpers.FormIntPtr(c, "founded_year")
		req.CountriesServed = helpers.FormIntPtr(c, "countries_served")
		req.ProjectsCompleted = helpers.FormIntPtr(c, "projects_completed")
	}
	req.Normalize()
	return &req, helpers.ValidateStruct(&req), nil
}

// GET /admin-company-info
func (cc *ContentController) GetCompanyInfo(c *fiber.Ctx) error {
	row, err := service.CompanyInfo(c.UserContext(), cc.DB)
	if errors.Is(err, service.ErrCompanyInfoNone) {
		return helpers.JsonOK(c, "ok", fiber.Map{"current_page": "company_info", "company_info": nil, "exists": false})
	}
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{"current_page": "company_info", "company_info": row, "exists": true})
}

// POST /admin-company-info
func (cc *ContentController) CreateCompanyInfo(c *fiber.Ctx) error {
	req, fieldErrs, err := parseCompanyInfo(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	row, err := service.CreateCompanyInfo(c.UserContext(), cc.DB, req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, "Company information created successfully!", row)
}

// POST /admin-company-info/edit
func (cc *ContentController) UpdateCompanyInfo(c *fiber.Ctx) error {
	req, fieldErrs, err := parseCompanyInfo(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	row, err := service.UpdateCompanyInfo(c.UserContext(), cc.DB, req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonUpdated(c, "Company information updated successfully!", row)
}
