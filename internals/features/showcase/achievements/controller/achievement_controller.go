package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/features/showcase/achievements/dto"
	"axflo_backend/internals/features/showcase/achievements/service"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const achievementsPerPage = 20

type AchievementController struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewAchievementController(db *gorm.DB, blob storage.BlobService) *AchievementController {
	return &AchievementController{DB: db, Blob: blob}
}

func (ac *AchievementController) imageURL(rel string) interface{} {
	return storage.URLOrNil(ac.Blob, rel)
}

// Actions wires the POST /admin-achievements action endpoint.
func (ac *AchievementController) Actions() *helpers.ActionRouter {
	return helpers.NewActionRouter("action").
		On("create", ac.Save).
		On("update", ac.Save).
		On("get", ac.Get).
		On("delete", ac.Delete).
		On("toggle_featured", ac.ToggleFeatured).
		On("bulk_action", ac.Bulk)
}

// GET /admin-achievements
func (ac *AchievementController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := dto.Filter{
		Search:   helpers.QueryTrim(c, "search"),
		Type:     helpers.QueryTrim(c, "type"),
		Status:   helpers.QueryTrim(c, "status"),
		Category: helpers.QueryTrim(c, "category"),
	}
	for _, v := range []*string{&f.Type, &f.Status, &f.Category} {
		if *v == "" {
			*v = "all"
		}
	}

	rows, total, p, err := service.ListAchievements(ctx, ac.DB, f, helpers.ResolvePaging(c, achievementsPerPage, achievementsPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	stats, err := service.CountAchievements(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	cats, err := service.ListCategories(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromAchievementRows(rows, ac.imageURL), helpers.BuildPagination(total, p), fiber.Map{
		"current_page":          "achievements",
		"categories":            dto.FromCategories(cats, nil),
		"total_achievements":    stats.Total,
		"featured_achievements": stats.Featured,
		"awards_count":          stats.Awards,
		"certifications_count":  stats.Certifications,
		"search_query":          f.Search,
		"type_filter":           f.Type,
		"status_filter":         f.Status,
		"category_filter":       f.Category,
		"type_choices":          dto.TypeChoices(),
		"status_choices":        dto.StatusChoices(),
	})
}

// action=create|update
func (ac *AchievementController) Save(c *fiber.Ctx) error {
	var req dto.AchievementSaveRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.AjaxFail(c, "Invalid request body")
	}
	req.Featured = helpers.FormBool(c, "featured")
	image, err := c.FormFile("featured_image")
	if err != nil {
		image = nil
	}

	_, created, err := service.SaveAchievement(c.UserContext(), ac.DB, ac.Blob, &req, image)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	if created {
		return helpers.AjaxMessage(c, service.MsgCreated)
	}
	return helpers.AjaxMessage(c, service.MsgUpdated)
}

func (ac *AchievementController) achievementID(c *fiber.Ctx) (uint, error) {
	var req dto.AchievementIDRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, service.ErrNotFound
	}
	return service.ParseID(req.AchievementID, service.ErrNotFound)
}

// action=get
func (ac *AchievementController) Get(c *fiber.Ctx) error {
	id, err := ac.achievementID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	a, err := service.GetAchievement(c.UserContext(), ac.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{"achievement": dto.FromAchievement(a, ac.imageURL(a.FeaturedImage))})
}

// action=delete
func (ac *AchievementController) Delete(c *fiber.Ctx) error {
	id, err := ac.achievementID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	title, err := service.DeleteAchievement(c.UserContext(), ac.DB, ac.Blob, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxMessage(c, service.DeletedMessage(title))
}

// action=toggle_featured
func (ac *AchievementController) ToggleFeatured(c *fiber.Ctx) error {
	id, err := ac.achievementID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	featured, err := service.ToggleFeatured(c.UserContext(), ac.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{"featured": featured})
}

// action=bulk_action
func (ac *AchievementController) Bulk(c *fiber.Ctx) error {
	req := dto.BulkRequest{
		BulkAction: helpers.FormString(c, "bulk_action"),
		IDs:        helpers.FormUintList(c, "achievement_ids[]"),
	}
	msg, err := service.BulkAction(c.UserContext(), ac.DB, ac.Blob, req.BulkAction, req.IDs)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxMessage(c, msg)
}

/* =========================
   CATEGORIES
========================= */

// CategoryActions wires the POST /admin-achievement-categories endpoint.
func (ac *AchievementController) CategoryActions() *helpers.ActionRouter {
	return helpers.NewActionRouter("action").
		On("create", ac.SaveCategory).
		On("update", ac.SaveCategory).
		On("get", ac.GetCategory).
		On("view_achievements", ac.ViewCategoryAchievements).
		On("delete", ac.DeleteCategory)
}

// GET /admin-achievement-categories
func (ac *AchievementController) ListCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()
	rows, err := service.ListCategories(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	usage, err := service.CategoryUsage(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	stats, err := service.CountCategories(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"current_page":                  "achievement_categories",
		"categories":                    dto.FromCategories(rows, usage),
		"total_categories":              stats.TotalCategories,
		"total_achievements":            stats.TotalAchievements,
		"categories_with_custom_colors": stats.CustomColors,
	})
}

// action=create|update
func (ac *AchievementController) SaveCategory(c *fiber.Ctx) error {
	var req dto.CategorySaveRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.AjaxFail(c, "Invalid request body")
	}
	_, created, err := service.SaveCategory(c.UserContext(), ac.DB, &req)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	if created {
		return helpers.AjaxMessage(c, service.MsgCategoryCreated)
	}
	return helpers.AjaxMessage(c, service.MsgCategoryUpdated)
}

func categoryID(c *fiber.Ctx) (uint, error) {
	var req dto.CategoryIDRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, service.ErrCategoryNotFound
	}
	return service.ParseID(req.CategoryID, service.ErrCategoryNotFound)
}

// action=get
func (ac *AchievementController) GetCategory(c *fiber.Ctx) error {
	id, err := categoryID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	row, err := service.GetCategory(c.UserContext(), ac.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{"category": dto.FromCategory(row)})
}

// action=view_achievements
func (ac *AchievementController) ViewCategoryAchievements(c *fiber.Ctx) error {
	id, err := categoryID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	row, items, err := service.CategoryAchievements(c.UserContext(), ac.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{
		"category":     dto.FromCategory(row),
		"achievements": dto.FromAchievementRows(items, ac.imageURL),
	})
}

// action=delete
func (ac *AchievementController) DeleteCategory(c *fiber.Ctx) error {
	id, err := categoryID(c)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	name, err := service.DeleteCategory(c.UserContext(), ac.DB, id)
	if err != nil {
		return helpers.AjaxFromError(c, err)
	}
	return helpers.AjaxMessage(c, service.CategoryDeletedMessage(name))
}
