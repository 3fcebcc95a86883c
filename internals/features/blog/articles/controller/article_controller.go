package controller

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/features/blog/articles/dto"
	"axflo_backend/internals/features/blog/articles/service"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const (
	mediaPerPage      = 5
	articlesPerPage   = 20
	categoriesPerPage = 20
	blogPath          = "/admin-blog/"
	blogCategoryPath  = "/admin-blog-categories/"
)

type ArticleController struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewArticleController(db *gorm.DB, blob storage.BlobService) *ArticleController {
	return &ArticleController{DB: db, Blob: blob}
}

/* =========================
   PUBLIC
========================= */

// GET /media
func (ac *ArticleController) Media(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := dto.PublicFilter{
		Search:   helpers.QueryTrim(c, "search"),
		Category: helpers.QueryTrim(c, "category"),
	}

	rows, total, p, err := service.PublicArticles(ctx, ac.DB, f, helpers.ResolvePaging(c, mediaPerPage, mediaPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	featured, err := service.FeaturedArticles(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	cats, err := service.AllCategories(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromArticles(rows, ac.Blob.PublicURL), helpers.BuildPagination(total, p), fiber.Map{
		"categories":        dto.FromBlogCategories(cats, nil),
		"featured_articles": dto.FromArticles(featured, ac.Blob.PublicURL),
		"search_query":      f.Search,
		"category_filter":   f.Category,
		"has_articles":      total > 0,
	})
}

// GET /blog/:slug
func (ac *ArticleController) Detail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	a, related, recent, err := service.ArticleDetail(ctx, ac.DB, c.Params("slug"))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	cats, err := service.AllCategories(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"article":          dto.FromArticle(a, ac.Blob.PublicURL, true),
		"related_articles": dto.FromArticles(related, ac.Blob.PublicURL),
		"recent_articles":  dto.FromArticles(recent, ac.Blob.PublicURL),
		"categories":       dto.FromBlogCategories(cats, nil),
	})
}

/* =========================
   ADMIN ARTICLES
========================= */

// GET /admin-blog
func (ac *ArticleController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := dto.AdminFilter{
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

	rows, total, p, err := service.ListArticles(ctx, ac.DB, f, helpers.ResolvePaging(c, articlesPerPage, articlesPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	totals, err := service.CountArticles(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	cats, err := service.AllCategories(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromArticles(rows, ac.Blob.PublicURL), helpers.BuildPagination(total, p), fiber.Map{
		"categories":         dto.FromBlogCategories(cats, nil),
		"status_filter":      f.Status,
		"category_filter":    f.Category,
		"search_query":       f.Search,
		"total_articles":     totals.Total,
		"published_articles": totals.Published,
		"draft_articles":     totals.Draft,
		"status_choices":     dto.StatusChoices(),
	})
}

func (ac *ArticleController) formContext(c *fiber.Ctx) (fiber.Map, error) {
	cats, err := service.AllCategories(c.UserContext(), ac.DB)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"categories":     dto.FromBlogCategories(cats, nil),
		"status_choices": dto.StatusChoices(),
	}, nil
}

func articleRequest(c *fiber.Ctx) (*dto.ArticleRequest, error) {
	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	req.Featured = helpers.FormBool(c, "featured")
	return &req, nil
}

func uploadedImage(c *fiber.Ctx) *multipart.FileHeader {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return fh
}

// GET /admin-blog/create
func (ac *ArticleController) CreateForm(c *fiber.Ctx) error {
	data, err := ac.formContext(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", data)
}

// POST /admin-blog/create
func (ac *ArticleController) Create(c *fiber.Ctx) error {
	authorID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	req, err := articleRequest(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, service.MsgIncomplete)
	}

	a, err := service.CreateArticle(c.UserContext(), ac.DB, ac.Blob, authorID, req, uploadedImage(c))
	if errors.Is(err, service.ErrIncomplete) {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, fmt.Sprintf("Blog post \"%s\" created successfully!", a.Title), fiber.Map{
		"article":  dto.FromArticle(a, ac.Blob.PublicURL, true),
		"redirect": blogPath,
	})
}

// GET /admin-blog/:id/edit
func (ac *ArticleController) EditForm(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrNotFound)
	}
	a, err := service.GetArticle(c.UserContext(), ac.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	data, err := ac.formContext(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	data["article"] = dto.FromArticle(a, ac.Blob.PublicURL, true)
	return helpers.JsonOK(c, "ok", data)
}

// POST /admin-blog/:id/edit
func (ac *ArticleController) Update(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrNotFound)
	}
	req, err := articleRequest(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, service.MsgIncomplete)
	}

	a, err := service.UpdateArticle(c.UserContext(), ac.DB, ac.Blob, id, req, uploadedImage(c))
	if errors.Is(err, service.ErrIncomplete) {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonUpdated(c, fmt.Sprintf("Blog post \"%s\" updated successfully!", a.Title), fiber.Map{
		"article":  dto.FromArticle(a, ac.Blob.PublicURL, true),
		"redirect": blogPath,
	})
}

// POST /admin-blog/:id/delete
func (ac *ArticleController) Delete(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrNotFound)
	}
	title, err := service.DeleteArticle(c.UserContext(), ac.DB, ac.Blob, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	msg := fmt.Sprintf("Blog post \"%s\" has been deleted successfully.", title)
	if helpers.IsXHR(c) {
		return helpers.AjaxMessage(c, msg)
	}
	return helpers.JsonDeleted(c, msg, fiber.Map{"id": id, "redirect": blogPath})
}

/* =========================
   BLOG CATEGORIES
========================= */

// GET /admin-blog-categories
func (ac *ArticleController) ListCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()
	rows, total, p, err := service.ListCategories(ctx, ac.DB, helpers.ResolvePaging(c, categoriesPerPage, categoriesPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	usage, err := service.CategoryUsage(ctx, ac.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromBlogCategories(rows, usage), helpers.BuildPagination(total, p), fiber.Map{
		"total_categories": total,
	})
}

// POST /admin-blog-categories
// delete_id deletes, edit_id edits, otherwise creates.
func (ac *ArticleController) SaveCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var req dto.BlogCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	if req.DeleteID != "" {
		id, err := strconv.ParseUint(req.DeleteID, 10, 64)
		if err != nil {
			return helpers.FromFiberError(c, service.ErrCategoryNotFound)
		}
		name, err := service.DeleteCategory(ctx, ac.DB, uint(id))
		if err != nil {
			return helpers.FromFiberError(c, err)
		}
		return helpers.JsonDeleted(c, fmt.Sprintf("Category \"%s\" deleted successfully!", name), fiber.Map{
			"id":       id,
			"redirect": blogCategoryPath,
		})
	}

	if req.Name == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, service.MsgCategoryRequired)
	}
	if fieldErrs := helpers.ValidateStruct(&req); fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}

	if req.EditID != "" {
		id, err := strconv.ParseUint(req.EditID, 10, 64)
		if err != nil {
			return helpers.FromFiberError(c, service.ErrCategoryNotFound)
		}
		row, err := service.UpdateCategory(ctx, ac.DB, uint(id), &req)
		if err != nil {
			return helpers.FromFiberError(c, err)
		}
		return helpers.JsonUpdated(c, fmt.Sprintf("Category \"%s\" updated successfully!", row.Name), fiber.Map{
			"category": dto.FromBlogCategory(row),
			"redirect": blogCategoryPath,
		})
	}

	row, err := service.CreateCategory(ctx, ac.DB, &req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, fmt.Sprintf("Category \"%s\" created successfully!", row.Name), fiber.Map{
		"category": dto.FromBlogCategory(row),
		"redirect": blogCategoryPath,
	})
}
