package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/features/showcase/milestones/dto"
	"axflo_backend/internals/features/showcase/milestones/service"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const milestonesPerPage = 20

type MilestoneController struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewMilestoneController(db *gorm.DB, blob storage.BlobService) *MilestoneController {
	return &MilestoneController{DB: db, Blob: blob}
}

func (mc *MilestoneController) imageURL(rel string) interface{} {
	return storage.URLOrNil(mc.Blob, rel)
}

// Actions wires the POST /admin-milestones action endpoint.
func (mc *MilestoneController) Actions() *helpers.ActionRouter {
	return helpers.NewActionRouter("action").
		On("create", mc.Save).
		On("update", mc.Save).
		On("get", mc.Get).
		On("delete", mc.Delete).
		On("toggle_featured", mc.ToggleFeatured).
		On("bulk_action", mc.Bulk)
}

// GET /admin-milestones
func (mc *MilestoneController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := dto.Filter{
		Search:   helpers.QueryTrim(c, "search"),
		Year:     helpers.QueryTrim(c, "year"),
		Featured: helpers.QueryTrim(c, "featured"),
	}
	if f.Year == "" {
		f.Year = "all"
	}
	if f.Featured == "" {
		f.Featured = "all"
	}

	rows, total, p, err := service.ListMilestones(ctx, mc.DB, f, helpers.ResolvePaging(c, milestonesPerPage, milestonesPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	stats, err := service.CountMilestones(ctx, mc.DB, time.Now())
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromMilestones(rows, mc.imageURL), helpers.BuildPagination(total, p), fiber.Map{
		"current_page":         "milestones",
		"total_milestones":     stats.Total,
		"featured_milestones":  stats.Featured,
		"this_year_milestones": stats.ThisYear,
		"years_span":           stats.YearsSpan,
		"available_years":      stats.AvailableYears,
		"search_query":         f.Search,
		"year_filter":          f.Year,
		"featured_filter":      f.Featured,
	})
}

// action=create|update
func (mc *MilestoneController) Save(c *fiber.Ctx) error {
	var req dto.MilestoneSaveRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.AjaxFail(c, "Invalid request body")
	}
	req.Featured = helpers.FormBool(c, "featured")
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	_, created, err := service.SaveMilestone(c.UserContext(), mc.DB, mc.Blob, &req, image)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	if created {
		return helpers.AjaxMessage(c, service.MsgCreated)
	}
	return helpers.AjaxMessage(c, service.MsgUpdated)
}

func milestoneID(c *fiber.Ctx) (uint, error) {
	var req dto.MilestoneIDRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, service.ErrNotFound
	}
	return service.ParseID(req.MilestoneID)
}

// action=get
func (mc *MilestoneController) Get(c *fiber.Ctx) error {
	id, err := milestoneID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	m, err := service.GetMilestone(c.UserContext(), mc.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{"milestone": dto.FromMilestone(m, mc.imageURL)})
}

// action=delete
func (mc *MilestoneController) Delete(c *fiber.Ctx) error {
	id, err := milestoneID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	title, err := service.DeleteMilestone(c.UserContext(), mc.DB, mc.Blob, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxMessage(c, service.DeletedMessage(title))
}

// action=toggle_featured
func (mc *MilestoneController) ToggleFeatured(c *fiber.Ctx) error {
	id, err := milestoneID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	featured, err := service.ToggleFeatured(c.UserContext(), mc.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{"featured": featured})
}

// action=bulk_action
func (mc *MilestoneController) Bulk(c *fiber.Ctx) error {
	req := dto.BulkRequest{
		BulkAction: helpers.FormString(c, "bulk_action"),
		IDs:        helpers.FormUintList(c, "milestone_ids[]"),
	}
	msg, err := service.BulkAction(c.UserContext(), mc.DB, mc.Blob, req.BulkAction, req.IDs)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxMessage(c, msg)
}
