package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"axflo_backend/internals/features/blog/articles/dto"
	"axflo_backend/internals/features/blog/articles/model"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const (
	MsgIncomplete        = "Please fill in all required fields."
	MsgNotFound          = "Blog post not found."
	MsgCategoryRequired  = "Category name is required."
	MsgCategoryNotFound  = "Category not found."
	excerptLen           = 300
	relatedLimit         = 3
	recentLimit          = 5
	featuredSidebarLimit = 3
)

var (
	ErrIncomplete       = errors.New(MsgIncomplete)
	ErrNotFound         = fiber.NewError(fiber.StatusNotFound, MsgNotFound)
	ErrCategoryNotFound = fiber.NewError(fiber.StatusNotFound, MsgCategoryNotFound)
)

/* ======================= PUBLIC ======================= */

func published(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", model.StatusPublished)
}

// PublicArticles is the media page listing: published only, newest first.
func PublicArticles(ctx context.Context, db *gorm.DB, f dto.PublicFilter, p helpers.Paging) ([]model.NewsArticleModel, int64, helpers.Paging, error) {
	q := published(db.WithContext(ctx).Model(&model.NewsArticleModel{}))
	q = helpers.SearchAny(q, f.Search, "title", "excerpt", "tags")
	if f.Category != "" {
		q = q.Where("category_id IN (?)",
			db.Model(&model.BlogCategoryModel{}).Select("id").Where("slug = ?", f.Category))
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)

	var rows []model.NewsArticleModel
	err := q.Preload("Category").Preload("Author").
		Order("published_at DESC").Order("id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

// FeaturedArticles feeds the media sidebar.
func FeaturedArticles(ctx context.Context, db *gorm.DB) ([]model.NewsArticleModel, error) {
	var rows []model.NewsArticleModel
	err := published(db.WithContext(ctx)).
		Where("featured = ?", true).
		Order("published_at DESC").
		Limit(featuredSidebarLimit).
		Find(&rows).Error
	return rows, err
}

// ArticleDetail loads a published article by slug and bumps its view
// counter. related shares the category (or lack of one); recent is the
// newest other posts.
func ArticleDetail(ctx context.Context, db *gorm.DB, slug string) (a *model.NewsArticleModel, related, recent []model.NewsArticleModel, err error) {
	var row model.NewsArticleModel
	err = published(db.WithContext(ctx)).
		Preload("Category").Preload("Author").
		Where("slug = ?", slug).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrNotFound
		}
		return nil, nil, nil, err
	}

	if err = db.WithContext(ctx).Model(&model.NewsArticleModel{}).
		Where("id = ?", row.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, nil, nil, err
	}
	row.ViewCount++

	rq := published(db.WithContext(ctx)).Where("id <> ?", row.ID)
	if row.CategoryID != nil {
		rq = rq.Where("category_id = ?", *row.CategoryID)
	} else {
		rq = rq.Where("category_id IS NULL")
	}
	if err = rq.Order("published_at DESC").Limit(relatedLimit).Find(&related).Error; err != nil {
		return nil, nil, nil, err
	}

	err = published(db.WithContext(ctx)).
		Where("id <> ?", row.ID).
		Order("published_at DESC").
		Limit(recentLimit).
		Find(&recent).Error
	if err != nil {
		return nil, nil, nil, err
	}
	return &row, related, recent, nil
}

/* ======================= ADMIN ARTICLES ======================= */

type ArticleTotals struct {
	Total     int64
	Published int64
	Draft     int64
}

func ListArticles(ctx context.Context, db *gorm.DB, f dto.AdminFilter, p helpers.Paging) ([]model.NewsArticleModel, int64, helpers.Paging, error) {
	q := db.WithContext(ctx).Model(&model.NewsArticleModel{})
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" && f.Category != "all" {
		q = q.Where("category_id = ?", f.Category)
	}
	q = helpers.SearchAny(q, f.Search, "title", "content", "tags")

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)

	var rows []model.NewsArticleModel
	err := q.Preload("Category").Preload("Author").
		Order("created_at DESC").Order("id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

func CountArticles(ctx context.Context, db *gorm.DB) (ArticleTotals, error) {
	var t ArticleTotals
	var rows []struct {
		Status string
		N      int64
	}
	err := db.WithContext(ctx).Model(&model.NewsArticleModel{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return t, err
	}
	for _, r := range rows {
		t.Total += r.N
		switch r.Status {
		case model.StatusPublished:
			t.Published = r.N
		case model.StatusDraft:
			t.Draft = r.N
		}
	}
	return t, nil
}

func GetArticle(ctx context.Context, db *gorm.DB, id uint) (*model.NewsArticleModel, error) {
	var a model.NewsArticleModel
	err := db.WithContext(ctx).Preload("Category").Preload("Author").First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// resolveCategory maps the posted category id to a row id. Unknown or
// malformed ids clear the category.
func resolveCategory(tx *gorm.DB, raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, nil
	}
	var n int64
	if err := tx.Model(&model.BlogCategoryModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	v := uint(id)
	return &v, nil
}

func excerptFor(req *dto.ArticleRequest) *string {
	ex := req.Excerpt
	if ex == "" {
		ex = helpers.Excerpt(req.Content, excerptLen)
	}
	if ex == "" {
		return nil
	}
	ex = helpers.Truncate(ex, excerptLen)
	return &ex
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func apply(a *model.NewsArticleModel, req *dto.ArticleRequest) {
	a.Title = helpers.Truncate(req.Title, 200)
	a.Excerpt = excerptFor(req)
	a.Content = req.Content
	a.Status = req.Status
	a.ImageURL = optional(req.ImageURL)
	a.ImageAlt = helpers.Truncate(req.ImageAlt, 200)
	a.Tags = helpers.Truncate(req.Tags, 200)
	a.MetaDescription = helpers.Truncate(req.MetaDescription, 160)
	a.Featured = req.Featured
}

// CreateArticle stores a new post authored by authorID. The slug is derived
// from the title and made unique.
func CreateArticle(ctx context.Context, db *gorm.DB, blob storage.BlobService, authorID uuid.UUID, req *dto.ArticleRequest, image *multipart.FileHeader) (*model.NewsArticleModel, error) {
	req.Normalize()
	if req.Title == "" || req.Content == "" {
		return nil, ErrIncomplete
	}

	var rel string
	if image != nil {
		var err error
		if rel, err = blob.SaveImage(ctx, storage.DirNews, image); err != nil {
			return nil, err
		}
	}

	a := model.NewsArticleModel{AuthorID: &authorID, Image: rel}
	apply(&a, req)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := resolveCategory(tx, req.CategoryID)
		if err != nil {
			return err
		}
		a.CategoryID = cat
		slug, err := helpers.EnsureUniqueSlugCI(ctx, tx, model.NewsArticleModel{}.TableName(), "slug",
			helpers.Slugify(a.Title, model.SlugMaxLen), 0, model.SlugMaxLen)
		if err != nil {
			return err
		}
		a.Slug = slug
		return tx.Omit(clause.Associations).Create(&a).Error
	})
	if err != nil {
		storage.DeleteQuietly(ctx, blob, rel)
		return nil, err
	}
	return &a, nil
}

// UpdateArticle rewrites the editable fields. The slug stays as created and
// published_at keeps its first value. A new upload replaces the old file.
func UpdateArticle(ctx context.Context, db *gorm.DB, blob storage.BlobService, id uint, req *dto.ArticleRequest, image *multipart.FileHeader) (*model.NewsArticleModel, error) {
	req.Normalize()

	var a model.NewsArticleModel
	if err := db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Title == "" || req.Content == "" {
		return nil, ErrIncomplete
	}

	old := a.Image
	var rel string
	if image != nil {
		var err error
		if rel, err = blob.SaveImage(ctx, storage.DirNews, image); err != nil {
			return nil, err
		}
		a.Image = rel
	}
	apply(&a, req)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := resolveCategory(tx, req.CategoryID)
		if err != nil {
			return err
		}
		a.CategoryID = cat
		return tx.Omit(clause.Associations).Save(&a).Error
	})
	if err != nil {
		storage.DeleteQuietly(ctx, blob, rel)
		return nil, err
	}
	if rel != "" && old != "" {
		storage.DeleteQuietly(ctx, blob, old)
	}
	return &a, nil
}

// DeleteArticle removes the row, then its uploaded image.
func DeleteArticle(ctx context.Context, db *gorm.DB, blob storage.BlobService, id uint) (string, error) {
	var a model.NewsArticleModel
	if err := db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if err := db.WithContext(ctx).Delete(&a).Error; err != nil {
		return "", err
	}
	storage.DeleteQuietly(ctx, blob, a.Image)
	return a.Title, nil
}

/* ======================= CATEGORIES ======================= */

func AllCategories(ctx context.Context, db *gorm.DB) ([]model.BlogCategoryModel, error) {
	var rows []model.BlogCategoryModel
	err := db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func ListCategories(ctx context.Context, db *gorm.DB, p helpers.Paging) ([]model.BlogCategoryModel, int64, helpers.Paging, error) {
	q := db.WithContext(ctx).Model(&model.BlogCategoryModel{})
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)

	var rows []model.BlogCategoryModel
	err := q.Order("name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error
	return rows, total, p, err
}

// CategoryUsage counts articles per category id.
func CategoryUsage(ctx context.Context, db *gorm.DB) (map[uint]int64, error) {
	var rows []struct {
		CategoryID uint
		N          int64
	}
	err := db.WithContext(ctx).Model(&model.NewsArticleModel{}).
		Select("category_id, COUNT(*) AS n").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.CategoryID] = r.N
	}
	return out, nil
}

func categorySlug(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (string, error) {
	return helpers.EnsureUniqueSlugCI(ctx, tx, model.BlogCategoryModel{}.TableName(), "slug",
		helpers.Slugify(name, 100), excludeID, 120)
}

func CreateCategory(ctx context.Context, db *gorm.DB, req *dto.BlogCategoryRequest) (*model.BlogCategoryModel, error) {
	row := model.BlogCategoryModel{Name: req.Name, Description: req.Description}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := categorySlug(ctx, tx, req.Name, 0)
		if err != nil {
			return err
		}
		row.Slug = slug
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateCategory renames the category and re-derives its slug.
func UpdateCategory(ctx context.Context, db *gorm.DB, id uint, req *dto.BlogCategoryRequest) (*model.BlogCategoryModel, error) {
	var row model.BlogCategoryModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		slug, err := categorySlug(ctx, tx, req.Name, id)
		if err != nil {
			return err
		}
		row.Name = req.Name
		row.Description = req.Description
		row.Slug = slug
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteCategory detaches its articles and removes the category.
func DeleteCategory(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var row model.BlogCategoryModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if err := tx.Model(&model.NewsArticleModel{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&row).Error
	})
	if err != nil {
		return "", err
	}
	return row.Name, nil
}
