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

	"axflo_backend/internals/features/showcase/milestones/dto"
	"axflo_backend/internals/features/showcase/milestones/model"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const (
	MsgCreated  = "Milestone created successfully!"
	MsgUpdated  = "Milestone updated successfully!"
	MsgNotFound = "Milestone not found"
)

var (
	ErrNotFound     = fiber.NewError(fiber.StatusNotFound, MsgNotFound)
	ErrInvalidBulk  = fiber.NewError(fiber.StatusBadRequest, "Invalid bulk action")
	ErrNoneSelected = fiber.NewError(fiber.StatusBadRequest, "No milestones selected.")
	ErrIncomplete   = fiber.NewError(fiber.StatusUnprocessableEntity, "Please fill in all required fields.")
	ErrInvalidDate  = fiber.NewError(fiber.StatusUnprocessableEntity, "Enter a valid date.")
)

func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrNotFound
	}
	return uint(id), nil
}

// Timeline lists every milestone oldest first, optionally only featured.
func Timeline(ctx context.Context, db *gorm.DB, featuredOnly bool) ([]model.CompanyMilestoneModel, error) {
	q := db.WithContext(ctx)
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}
	var rows []model.CompanyMilestoneModel
	err := q.Order("milestone_date ASC").Order("display_order ASC").Find(&rows).Error
	return rows, err
}

type Stats struct {
	Total          int64 `json:"total_milestones"`
	Featured       int64 `json:"featured_milestones"`
	ThisYear       int64 `json:"this_year_milestones"`
	YearsSpan      int   `json:"years_span"`
	AvailableYears []int `json:"available_years"`
}

func ListMilestones(ctx context.Context, db *gorm.DB, f dto.Filter, p helpers.Paging) ([]model.CompanyMilestoneModel, int64, helpers.Paging, error) {
	q := db.WithContext(ctx).Model(&model.CompanyMilestoneModel{})
	q = helpers.SearchAny(q, f.Search, "title", "description")
	if f.Year != "" && f.Year != "all" {
		q = q.Where("milestone_year = ?", f.Year)
	}
	switch f.Featured {
	case "yes":
		q = q.Where("featured = ?", true)
	case "no":
		q = q.Where("featured = ?", false)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)

	var rows []model.CompanyMilestoneModel
	err := q.Order("milestone_date DESC").Order("display_order ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

// CountMilestones computes the list header. now fixes "this year".
func CountMilestones(ctx context.Context, db *gorm.DB, now time.Time) (Stats, error) {
	s := Stats{AvailableYears: []int{}}
	q := db.WithContext(ctx).Model(&model.CompanyMilestoneModel{})

	if err := q.Session(&gorm.Session{}).Count(&s.Total).Error; err != nil {
		return s, err
	}
	if err := q.Session(&gorm.Session{}).Where("featured = ?", true).Count(&s.Featured).Error; err != nil {
		return s, err
	}
	if err := q.Session(&gorm.Session{}).Where("milestone_year = ?", now.Year()).Count(&s.ThisYear).Error; err != nil {
		return s, err
	}
	if err := q.Session(&gorm.Session{}).Distinct("milestone_year").
		Order("milestone_year DESC").
		Pluck("milestone_year", &s.AvailableYears).Error; err != nil {
		return s, err
	}
	if n := len(s.AvailableYears); n > 0 {
		s.YearsSpan = now.Year() - s.AvailableYears[n-1]
	}
	return s, nil
}

func GetMilestone(ctx context.Context, db *gorm.DB, id uint) (*model.CompanyMilestoneModel, error) {
	var m model.CompanyMilestoneModel
	if err := db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// SaveMilestone handles create and update. milestone_year follows the date
// through the model hook.
func SaveMilestone(ctx context.Context, db *gorm.DB, blob storage.BlobService, req *dto.MilestoneSaveRequest, image *multipart.FileHeader) (*model.CompanyMilestoneModel, bool, error) {
	req.Normalize()

	var m model.CompanyMilestoneModel
	creating := req.MilestoneID == ""
	if !creating {
		id, err := ParseID(req.MilestoneID)
		if err != nil {
			return nil, false, err
		}
		found, err := GetMilestone(ctx, db, id)
		if err != nil {
			return nil, false, err
		}
		m = *found
	}
	if req.Title == "" || req.Description == "" || req.MilestoneDate == "" {
		return nil, false, ErrIncomplete
	}
	date, err := time.Parse(helpers.DateLayout, req.MilestoneDate)
	if err != nil {
		return nil, false, ErrInvalidDate
	}
	order, _ := strconv.Atoi(req.DisplayOrder)
	if order < 0 {
		order = 0
	}

	m.Title = helpers.Truncate(req.Title, 200)
	m.Description = req.Description
	m.MilestoneDate = date
	m.Icon = helpers.Truncate(req.Icon, 50)
	m.Featured = req.Featured
	m.DisplayOrder = order

	old := m.Image
	var rel string
	if image != nil {
		if rel, err = blob.SaveImage(ctx, storage.DirMilestones, image); err != nil {
			return nil, false, err
		}
		m.Image = rel
	}
	if err := db.WithContext(ctx).Save(&m).Error; err != nil {
		storage.DeleteQuietly(ctx, blob, rel)
		return nil, false, err
	}
	if rel != "" && old != "" {
		storage.DeleteQuietly(ctx, blob, old)
	}
	return &m, creating, nil
}

func DeleteMilestone(ctx context.Context, db *gorm.DB, blob storage.BlobService, id uint) (string, error) {
	m, err := GetMilestone(ctx, db, id)
	if err != nil {
		return "", err
	}
	if err := db.WithContext(ctx).Delete(m).Error; err != nil {
		return "", err
	}
	storage.DeleteQuietly(ctx, blob, m.Image)
	return m.Title, nil
}

func ToggleFeatured(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var featured bool
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.CompanyMilestoneModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		featured = !m.Featured
		return tx.Model(&m).UpdateColumn("featured", featured).Error
	})
	return featured, err
}

var bulkVerbs = map[string]string{
	"feature":   "featured",
	"unfeature": "unfeatured",
	"delete":    "deleted",
}

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
		q := tx.Model(&model.CompanyMilestoneModel{}).Where("id IN ?", ids)
		switch action {
		case "feature":
			return q.UpdateColumn("featured", true).Error
		case "unfeature":
			return q.UpdateColumn("featured", false).Error
		default:
			if err := tx.Model(&model.CompanyMilestoneModel{}).
				Where("id IN ? AND image <> ''", ids).
				Pluck("image", &images).Error; err != nil {
				return err
			}
			return tx.Where("id IN ?", ids).Delete(&model.CompanyMilestoneModel{}).Error
		}
	})
	if err != nil {
		return "", err
	}
	for _, rel := range images {
		storage.DeleteQuietly(ctx, blob, rel)
	}
	return fmt.Sprintf("%d milestones %s successfully!", len(ids), verb), nil
}

func DeletedMessage(title string) string {
	return fmt.Sprintf("Milestone \"%s\" deleted successfully!", title)
}
