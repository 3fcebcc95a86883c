package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"axflo_backend/internals/features/showcase/achievements/dto"
	"axflo_backend/internals/features/showcase/achievements/model"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const (
	MsgCreated  = "Achievement created successfully!"
	MsgUpdated  = "Achievement updated successfully!"
	MsgNotFound = "Achievement not found"

	MsgCategoryCreated = "Category created successfully!"
	MsgCategoryUpdated = "Category updated successfully!"
)

var (
	ErrNotFound         = fiber.NewError(fiber.StatusNotFound, MsgNotFound)
	ErrCategoryNotFound = fiber.NewError(fiber.StatusNotFound, "Category not found")
	ErrCategoryInUse    = fiber.NewError(fiber.StatusConflict, "Cannot delete category with existing achievements")
	ErrInvalidBulk      = fiber.NewError(fiber.StatusBadRequest, "Invalid bulk action")
	ErrNoneSelected     = fiber.NewError(fiber.StatusBadRequest, "No achievements selected.")
	ErrIncomplete       = fiber.NewError(fiber.StatusUnprocessableEntity, "Please fill in all required fields.")
	ErrInvalidType      = fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid achievement type")
	ErrInvalidStatus    = fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid status")
	ErrInvalidDate      = fiber.NewError(fiber.StatusUnprocessableEntity, "Enter a valid date.")
	ErrCategoryName     = fiber.NewError(fiber.StatusUnprocessableEntity, "Category name is required.")
)

// ParseID reads a posted primary key. Blank or malformed ids map to notFound.
func ParseID(raw string, notFound error) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, notFound
	}
	return uint(id), nil
}

/* ======================= PUBLIC ======================= */

// PublicAchievements lists ACTIVE achievements newest first, optionally
// only the featured ones.
func PublicAchievements(ctx context.Context, db *gorm.DB, featuredOnly bool) ([]model.AchievementModel, error) {
	q := db.WithContext(ctx).Preload("Category").Where("status = ?", model.StatusActive)
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}
	var rows []model.AchievementModel
	err := q.Order("display_order ASC").Order("achievement_date DESC").Find(&rows).Error
	return rows, err
}

/* ======================= ADMIN LIST ======================= */

type Stats struct {
	Total          int64 `json:"total_achievements"`
	Featured       int64 `json:"featured_achievements"`
	Awards         int64 `json:"awards_count"`
	Certifications int64 `json:"certifications_count"`
}

func ListAchievements(ctx context.Context, db *gorm.DB, f dto.Filter, p helpers.Paging) ([]model.AchievementModel, int64, helpers.Paging, error) {
	q := db.WithContext(ctx).Model(&model.AchievementModel{})
	q = helpers.SearchAny(q, f.Search, "title", "description", "short_description")
	if f.Type != "" && f.Type != "all" {
		q = q.Where("achievement_type = ?", f.Type)
	}
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" && f.Category != "all" {
		q = q.Where("category_id = ?", f.Category)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)

	var rows []model.AchievementModel
	err := q.Preload("Category").
		Order("achievement_date DESC").Order("display_order ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

func CountAchievements(ctx context.Context, db *gorm.DB) (Stats, error) {
	var s Stats
	err := db.WithContext(ctx).Model(&model.AchievementModel{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN featured = ? THEN 1 ELSE 0 END), 0) AS featured,
			COALESCE(SUM(CASE WHEN achievement_type = ? THEN 1 ELSE 0 END), 0) AS awards,
			COALESCE(SUM(CASE WHEN achievement_type = ? THEN 1 ELSE 0 END), 0) AS certifications`,
			true, model.TypeAward, model.TypeCertification).
		Scan(&s).Error
	return s, err
}

/* ======================= ACTIONS ======================= */

func GetAchievement(ctx context.Context, db *gorm.DB, id uint) (*model.AchievementModel, error) {
	var a model.AchievementModel
	if err := db.WithContext(ctx).Preload("Category").First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func categoryExists(tx *gorm.DB, raw string) (uint, error) {
	id, err := ParseID(raw, ErrCategoryNotFound)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Model(&model.AchievementCategoryModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrCategoryNotFound
	}
	return id, nil
}

// SaveAchievement handles create and update. The category and the
// impact_metrics JSON are checked before anything is written.
func SaveAchievement(ctx context.Context, db *gorm.DB, blob storage.BlobService, req *dto.AchievementSaveRequest, image *multipart.FileHeader) (*model.AchievementModel, bool, error) {
	req.Normalize()
	tx := db.WithContext(ctx)

	var a model.AchievementModel
	creating := req.AchievementID == ""
	if !creating {
		id, err := ParseID(req.AchievementID, ErrNotFound)
		if err != nil {
			return nil, false, err
		}
		if err := tx.First(&a, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, ErrNotFound
			}
			return nil, false, err
		}
	}

	catID, err := categoryExists(tx, req.CategoryID)
	if err != nil {
		return nil, false, err
	}
	metrics, err := helpers.ParseJSONObject("impact metrics", req.ImpactMetrics)
	if err != nil {
		return nil, false, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	if req.Title == "" || req.Description == "" || req.AchievementDate == "" {
		return nil, false, ErrIncomplete
	}
	if !model.IsValidType(req.AchievementType) {
		return nil, false, ErrInvalidType
	}
	if !model.IsValidStatus(req.Status) {
		return nil, false, ErrInvalidStatus
	}
	date, err := time.Parse(helpers.DateLayout, req.AchievementDate)
	if err != nil {
		return nil, false, ErrInvalidDate
	}
	order, _ := strconv.Atoi(req.DisplayOrder)
	if order < 0 {
		order = 0
	}

	a.Title = helpers.Truncate(req.Title, 200)
	a.AchievementType = req.AchievementType
	a.CategoryID = catID
	a.AchievementDate = date
	a.ShortDescription = helpers.Truncate(req.ShortDescription, 300)
	a.Description = req.Description
	a.ExternalLink = helpers.Truncate(req.ExternalLink, 200)
	a.ImpactMetrics = metrics
	a.Status = req.Status
	a.Featured = req.Featured
	a.DisplayOrder = order

	old := a.FeaturedImage
	var rel string
	if image != nil {
		if rel, err = blob.SaveImage(ctx, storage.DirAchievements, image); err != nil {
			return nil, false, err
		}
		a.FeaturedImage = rel
	}

	if err := tx.Omit(clause.Associations).Save(&a).Error; err != nil {
		storage.DeleteQuietly(ctx, blob, rel)
		return nil, false, err
	}
	if rel != "" && old != "" {
		storage.DeleteQuietly(ctx, blob, old)
	}
	return &a, creating, nil
}

func DeleteAchievement(ctx context.Context, db *gorm.DB, blob storage.BlobService, id uint) (string, error) {
	var a model.AchievementModel
	if err := db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if err := db.WithContext(ctx).Delete(&a).Error; err != nil {
		return "", err
	}
	storage.DeleteQuietly(ctx, blob, a.FeaturedImage)
	return a.Title, nil
}

func ToggleFeatured(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var featured bool
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.AchievementModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		featured = !a.Featured
		return tx.Model(&a).UpdateColumn("featured", featured).Error
	})
	return featured, err
}

var bulkVerbs = map[string]string{
	"feature":   "featured",
	"unfeature": "unfeatured",
	"archive":   "archived",
	"activate":  "activated",
	"delete":    "deleted",
}

// BulkAction applies action to ids. The message counts the ids posted, not
// the rows matched.
func BulkAction(ctx context.Context, db *gorm.DB, blob storage.BlobService, action string, ids []uint) (string, error) {
	verb, ok := bulkVerbs[action]
	if !ok {
		return "", ErrInvalidBulk
	}
	if len(ids) == 0 {
		return "", ErrNoneSelected
	}

	var images []string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&model.AchievementModel{}).Where("id IN ?", ids)
		switch action {
		case "feature":
			return q.UpdateColumn("featured", true).Error
		case "unfeature":
			return q.UpdateColumn("featured", false).Error
		case "archive":
			return q.UpdateColumn("status", model.StatusArchived).Error
		case "activate":
			return q.UpdateColumn("status", model.StatusActive).Error
		default:
			if err := tx.Model(&model.AchievementModel{}).
				Where("id IN ? AND featured_image <> ''", ids).
				Pluck("featured_image", &images).Error; err != nil {
				return err
			}
			return tx.Where("id IN ?", ids).Delete(&model.AchievementModel{}).Error
		}
	})
	if err != nil {
		return "", err
	}
	for _, rel := range images {
		storage.DeleteQuietly(ctx, blob, rel)
	}
	return fmt.Sprintf("%d achievements %s successfully!", len(ids), verb), nil
}

/* ======================= CATEGORIES ======================= */

type CategoryStats struct {
	TotalCategories   int64 `json:"total_categories"`
	TotalAchievements int64 `json:"total_achievements"`
	CustomColors      int64 `json:"categories_with_custom_colors"`
}

func ListCategories(ctx context.Context, db *gorm.DB) ([]model.AchievementCategoryModel, error) {
	var rows []model.AchievementCategoryModel
	err := db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// CategoryUsage counts achievements per category id.
func CategoryUsage(ctx context.Context, db *gorm.DB) (map[uint]int64, error) {
	var rows []struct {
		CategoryID uint
		N          int64
	}
	err := db.WithContext(ctx).Model(&model.AchievementModel{}).
		Select("category_id, COUNT(*) AS n").
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

func CountCategories(ctx context.Context, db *gorm.DB) (CategoryStats, error) {
	var s CategoryStats
	q := db.WithContext(ctx)
	if err := q.Model(&model.AchievementCategoryModel{}).Count(&s.TotalCategories).Error; err != nil {
		return s, err
	}
	if err := q.Model(&model.AchievementCategoryModel{}).
		Where("color <> ?", dto.FormDefaultColor).
		Count(&s.CustomColors).Error; err != nil {
		return s, err
	}
	err := q.Model(&model.AchievementModel{}).Count(&s.TotalAchievements).Error
	return s, err
}

func GetCategory(ctx context.Context, db *gorm.DB, id uint) (*model.AchievementCategoryModel, error) {
	var row model.AchievementCategoryModel
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &row, nil
}

// CategoryAchievements returns the category with every achievement in it.
func CategoryAchievements(ctx context.Context, db *gorm.DB, id uint) (*model.AchievementCategoryModel, []model.AchievementModel, error) {
	cat, err := GetCategory(ctx, db, id)
	if err != nil {
		return nil, nil, err
	}
	var rows []model.AchievementModel
	err = db.WithContext(ctx).
		Where("category_id = ?", id).
		Order("achievement_date DESC").
		Find(&rows).Error
	return cat, rows, err
}

func SaveCategory(ctx context.Context, db *gorm.DB, req *dto.CategorySaveRequest) (*model.AchievementCategoryModel, bool, error) {
	req.Normalize()
	var row model.AchievementCategoryModel
	creating := req.CategoryID == ""
	if !creating {
		id, err := ParseID(req.CategoryID, ErrCategoryNotFound)
		if err != nil {
			return nil, false, err
		}
		cat, err := GetCategory(ctx, db, id)
		if err != nil {
			return nil, false, err
		}
		row = *cat
	}
	if req.Name == "" {
		return nil, false, ErrCategoryName
	}

	row.Name = helpers.Truncate(req.Name, 100)
	row.Description = req.Description
	row.Icon = helpers.Truncate(req.Icon, 50)
	row.Color = helpers.Truncate(req.Color, 7)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(&row).Error; err != nil {
		return nil, false, err
	}
	return &row, creating, nil
}

// DeleteCategory refuses while the category still owns achievements.
func DeleteCategory(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var name string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.AchievementCategoryModel
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		var n int64
		if err := tx.Model(&model.AchievementModel{}).Where("category_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrCategoryInUse
		}
		name = row.Name
		return tx.Delete(&row).Error
	})
	return name, err
}

func DeletedMessage(title string) string {
	return fmt.Sprintf("Achievement \"%s\" deleted successfully!", title)
}

func CategoryDeletedMessage(name string) string {
	return fmt.Sprintf("Category \"%s\" deleted successfully!", name)
}
