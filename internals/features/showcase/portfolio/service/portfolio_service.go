package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"axflo_backend/internals/features/showcase/portfolio/dto"
	"axflo_backend/internals/features/showcase/portfolio/model"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const (
	MsgCreated  = "Project created successfully!"
	MsgUpdated  = "Project updated successfully!"
	MsgNotFound = "Project not found"
)

var (
	ErrNotFound       = fiber.NewError(fiber.StatusNotFound, MsgNotFound)
	ErrInvalidBulk    = fiber.NewError(fiber.StatusBadRequest, "Invalid bulk action")
	ErrNoneSelected   = fiber.NewError(fiber.StatusBadRequest, "No projects selected.")
	ErrIncomplete     = fiber.NewError(fiber.StatusUnprocessableEntity, "Please fill in all required fields.")
	ErrInvalidType    = fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid project type")
	ErrInvalidStatus  = fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid status")
	ErrInvalidDate    = fiber.NewError(fiber.StatusUnprocessableEntity, "Enter a valid date.")
	ErrInvalidNumber  = fiber.NewError(fiber.StatusUnprocessableEntity, "Enter a valid number.")
	ErrPublicNotFound = fiber.NewError(fiber.StatusNotFound, "Project not found.")
)

// Uploads groups the three optional image fields.
type Uploads struct {
	Featured *multipart.FileHeader
	Before   *multipart.FileHeader
	After    *multipart.FileHeader
}

func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrNotFound
	}
	return uint(id), nil
}

/* ======================= PUBLIC ======================= */

func visible(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", model.StatusArchived)
}

// PortfoliosByStatus lists entries with the given status in display order.
func PortfoliosByStatus(ctx context.Context, db *gorm.DB, status string) ([]model.ProjectPortfolioModel, error) {
	var rows []model.ProjectPortfolioModel
	err := db.WithContext(ctx).
		Where("status = ?", status).
		Order("display_order ASC").Order("completion_date DESC").
		Find(&rows).Error
	return rows, err
}

// HomepagePortfolios lists non-archived entries flagged for the homepage.
func HomepagePortfolios(ctx context.Context, db *gorm.DB) ([]model.ProjectPortfolioModel, error) {
	var rows []model.ProjectPortfolioModel
	err := visible(db.WithContext(ctx)).
		Where("featured_on_homepage = ?", true).
		Order("display_order ASC").
		Find(&rows).Error
	return rows, err
}

// PortfolioBySlug loads a non-archived entry and bumps its view counter.
func PortfolioBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.ProjectPortfolioModel, error) {
	var p model.ProjectPortfolioModel
	if err := visible(db.WithContext(ctx)).Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicNotFound
		}
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&model.ProjectPortfolioModel{}).
		Where("id = ?", p.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, err
	}
	p.ViewCount++
	return &p, nil
}

/* ======================= ADMIN LIST ======================= */

type Stats struct {
	Total     int64   `json:"total_projects"`
	Featured  int64   `json:"featured_projects"`
	Completed int64   `json:"completed_projects"`
	Value     float64 `json:"total_value"` // millions
}

func ListPortfolios(ctx context.Context, db *gorm.DB, f dto.Filter, p helpers.Paging) ([]model.ProjectPortfolioModel, int64, helpers.Paging, error) {
	q := db.WithContext(ctx).Model(&model.ProjectPortfolioModel{})
	q = helpers.SearchAny(q, f.Search, "title", "client", "location", "brief_description")
	if f.ProjectType != "" && f.ProjectType != "all" {
		q = q.Where("project_type = ?", f.ProjectType)
	}
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Year != "" && f.Year != "all" {
		if y, err := strconv.Atoi(f.Year); err == nil {
			from := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
			q = q.Where("completion_date >= ? AND completion_date < ?", from, from.AddDate(1, 0, 0))
		}
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)

	var rows []model.ProjectPortfolioModel
	err := q.Order("completion_date DESC").Order("display_order ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

func CountPortfolios(ctx context.Context, db *gorm.DB) (Stats, error) {
	var row struct {
		Total      int64
		Featured   int64
		Completed  int64
		TotalValue float64
	}
	err := db.WithContext(ctx).Model(&model.ProjectPortfolioModel{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN featured_on_homepage = ? THEN 1 ELSE 0 END), 0) AS featured,
			COALESCE(SUM(CASE WHEN status IN (?, ?) THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(project_value), 0) AS total_value`,
			true, model.StatusFeatured, model.StatusStandard).
		Scan(&row).Error
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Total:     row.Total,
		Featured:  row.Featured,
		Completed: row.Completed,
		Value:     row.TotalValue / 1_000_000,
	}, nil
}

// AvailableYears lists distinct completion years, newest first.
func AvailableYears(ctx context.Context, db *gorm.DB) ([]int, error) {
	var dates []time.Time
	err := db.WithContext(ctx).Model(&model.ProjectPortfolioModel{}).
		Where("completion_date IS NOT NULL").
		Pluck("completion_date", &dates).Error
	if err != nil {
		return nil, err
	}
	seen := map[int]bool{}
	years := make([]int, 0)
	for _, d := range dates {
		if y := d.Year(); !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

/* ======================= ACTIONS ======================= */

func GetPortfolio(ctx context.Context, db *gorm.DB, id uint) (*model.ProjectPortfolioModel, error) {
	var p model.ProjectPortfolioModel
	if err := db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(helpers.DateLayout, raw)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

func parseOptionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, ErrInvalidNumber
	}
	return &n, nil
}

func parseOptionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return nil, ErrInvalidNumber
	}
	return &f, nil
}

// saveUploads stores each present upload and returns the new paths keyed
// like the model fields.
func saveUploads(ctx context.Context, blob storage.BlobService, up Uploads) (map[string]string, error) {
	saved := map[string]string{}
	for _, it := range []struct {
		key string
		dir string
		fh  *multipart.FileHeader
	}{
		{"featured", storage.DirPortfolio, up.Featured},
		{"before", storage.DirPortfolioPre, up.Before},
		{"after", storage.DirPortfolioPost, up.After},
	} {
		if it.fh == nil {
			continue
		}
		rel, err := blob.SaveImage(ctx, it.dir, it.fh)
		if err != nil {
			for _, done := range saved {
				storage.DeleteQuietly(ctx, blob, done)
			}
			return nil, err
		}
		saved[it.key] = rel
	}
	return saved, nil
}

// SavePortfolio handles create and update. Both JSON metadata fields are
// validated before any lookup or write. New slugs are unique; an edit keeps
// the slug it was created with.
func SavePortfolio(ctx context.Context, db *gorm.DB, blob storage.BlobService, req *dto.PortfolioSaveRequest, up Uploads) (*model.ProjectPortfolioModel, bool, error) {
	req.Normalize()

	impact, err := helpers.ParseJSONObject("environmental impact", req.EnvironmentalImpact)
	if err != nil {
		return nil, false, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	stats, err := helpers.ParseJSONObject("key statistics", req.KeyStatistics)
	if err != nil {
		return nil, false, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	var p model.ProjectPortfolioModel
	creating := req.ProjectID == ""
	if !creating {
		id, err := ParseID(req.ProjectID)
		if err != nil {
			return nil, false, err
		}
		found, err := GetPortfolio(ctx, db, id)
		if err != nil {
			return nil, false, err
		}
		p = *found
	}

	if req.Title == "" || req.Client == "" || req.Location == "" || req.BriefDescription == "" ||
		req.DetailedDescription == "" || req.StartDate == "" {
		return nil, false, ErrIncomplete
	}
	if !model.IsValidProjectType(req.ProjectType) {
		return nil, false, ErrInvalidType
	}
	if !model.IsValidStatus(req.Status) {
		return nil, false, ErrInvalidStatus
	}
	start, err := time.Parse(helpers.DateLayout, req.StartDate)
	if err != nil {
		return nil, false, ErrInvalidDate
	}
	completion, err := parseOptionalDate(req.CompletionDate)
	if err != nil {
		return nil, false, err
	}
	duration, err := parseOptionalInt(req.DurationMonths)
	if err != nil {
		return nil, false, err
	}
	value, err := parseOptionalFloat(req.ProjectValue)
	if err != nil {
		return nil, false, err
	}
	order, _ := strconv.Atoi(req.DisplayOrder)
	if order < 0 {
		order = 0
	}

	p.Title = helpers.Truncate(req.Title, 200)
	p.Client = helpers.Truncate(req.Client, 200)
	p.Location = helpers.Truncate(req.Location, 200)
	p.ProjectType = req.ProjectType
	p.BriefDescription = helpers.Truncate(req.BriefDescription, 300)
	p.DetailedDescription = req.DetailedDescription
	p.Challenge = req.Challenge
	p.Solution = req.Solution
	p.Results = req.Results
	p.StartDate = start
	p.CompletionDate = completion
	p.DurationMonths = duration
	p.ProjectValue = value
	p.EnvironmentalImpact = impact
	p.KeyStatistics = stats
	p.MetaDescription = helpers.Truncate(req.MetaDescription, 160)
	p.Tags = helpers.Truncate(req.Tags, 200)
	p.Status = req.Status
	p.FeaturedOnHomepage = req.FeaturedOnHomepage
	p.DisplayOrder = order

	saved, err := saveUploads(ctx, blob, up)
	if err != nil {
		return nil, false, err
	}
	var replaced []string
	for key, rel := range saved {
		switch key {
		case "featured":
			replaced = append(replaced, p.FeaturedImage)
			p.FeaturedImage = rel
		case "before":
			replaced = append(replaced, p.BeforeImage)
			p.BeforeImage = rel
		case "after":
			replaced = append(replaced, p.AfterImage)
			p.AfterImage = rel
		}
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if creating {
			slug, err := helpers.EnsureUniqueSlugCI(ctx, tx, model.ProjectPortfolioModel{}.TableName(), "slug",
				helpers.Slugify(p.Title, model.SlugMaxLen), 0, model.SlugMaxLen)
			if err != nil {
				return err
			}
			p.Slug = slug
		}
		return tx.Omit(clause.Associations).Save(&p).Error
	})
	if err != nil {
		for _, rel := range saved {
			storage.DeleteQuietly(ctx, blob, rel)
		}
		return nil, false, err
	}
	for _, rel := range replaced {
		storage.DeleteQuietly(ctx, blob, rel)
	}
	return &p, creating, nil
}

// imageSet holds the featured, before and after paths of one entry.
type imageSet [3]string

func imagesOf(p *model.ProjectPortfolioModel) imageSet {
	return imageSet{p.FeaturedImage, p.BeforeImage, p.AfterImage}
}

func (s imageSet) remove(ctx context.Context, blob storage.BlobService) {
	for _, rel := range s {
		if rel != "" {
			storage.DeleteQuietly(ctx, blob, rel)
		}
	}
}

func DeletePortfolio(ctx context.Context, db *gorm.DB, blob storage.BlobService, id uint) (string, error) {
	p, err := GetPortfolio(ctx, db, id)
	if err != nil {
		return "", err
	}
	if err := db.WithContext(ctx).Delete(p).Error; err != nil {
		return "", err
	}
	imagesOf(p).remove(ctx, blob)
	return p.Title, nil
}

// ToggleFeatured flips featured_on_homepage.
func ToggleFeatured(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var featured bool
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.ProjectPortfolioModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		featured = !p.FeaturedOnHomepage
		return tx.Model(&p).UpdateColumn("featured_on_homepage", featured).Error
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

// BulkAction applies action to ids. activate restores STANDARD.
func BulkAction(ctx context.Context, db *gorm.DB, blob storage.BlobService, action string, ids []uint) (string, error) {
	verb, ok := bulkVerbs[action]
	if !ok {
		return "", ErrInvalidBulk
	}
	if len(ids) == 0 {
		return "", ErrNoneSelected
	}

	var doomed []model.ProjectPortfolioModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&model.ProjectPortfolioModel{}).Where("id IN ?", ids)
		switch action {
		case "feature":
			return q.UpdateColumn("featured_on_homepage", true).Error
		case "unfeature":
			return q.UpdateColumn("featured_on_homepage", false).Error
		case "archive":
			return q.UpdateColumn("status", model.StatusArchived).Error
		case "activate":
			return q.UpdateColumn("status", model.StatusStandard).Error
		default:
			if err := tx.Where("id IN ?", ids).Find(&doomed).Error; err != nil {
				return err
			}
			return tx.Where("id IN ?", ids).Delete(&model.ProjectPortfolioModel{}).Error
		}
	})
	if err != nil {
		return "", err
	}
	for i := range doomed {
		imagesOf(&doomed[i]).remove(ctx, blob)
	}
	return fmt.Sprintf("%d projects %s successfully!", len(ids), verb), nil
}

func DeletedMessage(title string) string {
	return fmt.Sprintf("Project \"%s\" deleted successfully!", title)
}
