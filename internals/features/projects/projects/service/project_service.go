package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	jobModel "axflo_backend/internals/features/careers/jobs/model"
	"axflo_backend/internals/features/projects/projects/dto"
	"axflo_backend/internals/features/projects/projects/model"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const (
	MsgNotFound            = "Project not found."
	MsgImageRequired       = "Please choose an image to upload."
	MsgCompletionBeforeRun = "Completion date cannot be before the start date."
)

var (
	ErrNotFound            = fiber.NewError(fiber.StatusNotFound, MsgNotFound)
	ErrImageNotFound       = fiber.NewError(fiber.StatusNotFound, "Project image not found.")
	ErrTestimonialNotFound = fiber.NewError(fiber.StatusNotFound, "Testimonial not found.")
	ErrInvalidCategory     = fiber.NewError(fiber.StatusBadRequest, "Select a valid project category.")
	ErrImageRequired       = fiber.NewError(fiber.StatusBadRequest, MsgImageRequired)
	ErrCompletionBeforeRun = fiber.NewError(fiber.StatusBadRequest, MsgCompletionBeforeRun)
)

func imagesByOrder(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC").Order("id ASC")
}

/* ======================= PUBLIC ======================= */

// PublicProjects lists every project except cancelled ones, featured first.
// Only approved testimonials are attached. categoryID 0 means any.
func PublicProjects(ctx context.Context, db *gorm.DB, categoryID uint) ([]model.ProjectModel, error) {
	q := db.WithContext(ctx).
		Where("status <> ?", model.StatusCancelled).
		Preload("Category").
		Preload("Images", imagesByOrder).
		Preload("Testimonials", "approved = ?", true)
	if categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var rows []model.ProjectModel
	err := q.Order("featured DESC").Order("start_date DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}

/* ======================= ADMIN ======================= */

func projectQuery(db *gorm.DB, f dto.Filter) *gorm.DB {
	q := db.Model(&model.ProjectModel{})
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" && f.Category != "all" {
		if id, err := strconv.ParseUint(f.Category, 10, 64); err == nil {
			q = q.Where("category_id = ?", id)
		}
	}
	return helpers.SearchAny(q, f.Search, "name", "client", "location", "description")
}

func ListProjects(ctx context.Context, db *gorm.DB, f dto.Filter, p helpers.Paging) ([]model.ProjectModel, int64, helpers.Paging, error) {
	q := projectQuery(db.WithContext(ctx), f)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)

	var rows []model.ProjectModel
	err := q.Preload("Category").
		Order("created_at DESC").Order("id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

type Stats struct {
	Total      int64 `gorm:"column:total"`
	Featured   int64 `gorm:"column:featured"`
	Completed  int64 `gorm:"column:completed"`
	InProgress int64 `gorm:"column:in_progress"`
}

func CountProjects(ctx context.Context, db *gorm.DB) (Stats, error) {
	var s Stats
	err := db.WithContext(ctx).Model(&model.ProjectModel{}).Select(`
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN featured THEN 1 ELSE 0 END), 0) AS featured,
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed,
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS in_progress`,
		model.StatusCompleted, model.StatusInProgress,
	).Scan(&s).Error
	return s, err
}

// GetProject loads a project with all of its images and testimonials.
func GetProject(ctx context.Context, db *gorm.DB, id uint) (*model.ProjectModel, error) {
	var p model.ProjectModel
	err := db.WithContext(ctx).
		Preload("Category").
		Preload("Images", imagesByOrder).
		Preload("Testimonials", func(db *gorm.DB) *gorm.DB { return db.Order("date_given DESC").Order("id DESC") }).
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func checkCategory(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&jobModel.JobCategoryModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidCategory
	}
	return nil
}

func apply(p *model.ProjectModel, req *dto.ProjectRequest) error {
	start, done := req.Dates()
	if done != nil && done.Before(start) {
		return ErrCompletionBeforeRun
	}
	p.Name = req.Name
	p.Client = req.Client
	p.Description = req.Description
	p.DetailedDescription = req.DetailedDescription
	p.StartDate = start
	p.CompletionDate = done
	p.CategoryID = req.CategoryID
	p.Status = req.Status
	p.Location = req.Location
	p.ProjectValue = req.ProjectValue
	p.Featured = req.Featured
	return nil
}

// CreateProject expects a normalized and validated request.
func CreateProject(ctx context.Context, db *gorm.DB, req *dto.ProjectRequest) (*model.ProjectModel, error) {
	var p model.ProjectModel
	if err := apply(&p, req); err != nil {
		return nil, err
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkCategory(tx, req.CategoryID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func UpdateProject(ctx context.Context, db *gorm.DB, id uint, req *dto.ProjectRequest) (*model.ProjectModel, error) {
	var p model.ProjectModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := checkCategory(tx, req.CategoryID); err != nil {
			return err
		}
		if err := apply(&p, req); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject removes the project with its images and testimonials.
// Image files are removed once the rows are gone.
func DeleteProject(ctx context.Context, db *gorm.DB, blob storage.BlobService, id uint) (string, error) {
	var (
		name  string
		files []string
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.ProjectModel
		if err := tx.Select("id", "name").First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		name = p.Name
		if err := tx.Model(&model.ProjectImageModel{}).Where("project_id = ?", id).Pluck("image", &files).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectImageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.ClientTestimonialModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ProjectModel{}, id).Error
	})
	if err != nil {
		return "", err
	}
	for _, f := range files {
		storage.DeleteQuietly(ctx, blob, f)
	}
	return name, nil
}

/* ======================= IMAGES ======================= */

// AddImage stores an upload under projects/ and attaches it.
func AddImage(ctx context.Context, db *gorm.DB, blob storage.BlobService, projectID uint, req *dto.ProjectImageRequest, fh *multipart.FileHeader) (*model.ProjectImageModel, error) {
	if fh == nil {
		return nil, ErrImageRequired
	}
	if _, err := GetProjectName(ctx, db, projectID); err != nil {
		return nil, err
	}
	rel, err := blob.SaveImage(ctx, storage.DirProjects, fh)
	if err != nil {
		return nil, err
	}
	img := model.ProjectImageModel{
		ProjectID:    projectID,
		Image:        rel,
		Caption:      req.Caption,
		DisplayOrder: req.DisplayOrder,
		IsFeatured:   req.IsFeatured,
	}
	if err := db.WithContext(ctx).Create(&img).Error; err != nil {
		storage.DeleteQuietly(ctx, blob, rel)
		return nil, err
	}
	return &img, nil
}

func DeleteImage(ctx context.Context, db *gorm.DB, blob storage.BlobService, projectID, imageID uint) error {
	var img model.ProjectImageModel
	err := db.WithContext(ctx).First(&img, "id = ? AND project_id = ?", imageID, projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	if err := db.WithContext(ctx).Delete(&img).Error; err != nil {
		return err
	}
	storage.DeleteQuietly(ctx, blob, img.Image)
	return nil
}

// GetProjectName is a light existence check.
func GetProjectName(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var p model.ProjectModel
	if err := db.WithContext(ctx).Select("id", "name").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return p.Name, nil
}

/* ======================= TESTIMONIALS ======================= */

// AddTestimonial expects a normalized and validated request.
func AddTestimonial(ctx context.Context, db *gorm.DB, projectID uint, req *dto.TestimonialRequest) (*model.ClientTestimonialModel, error) {
	if _, err := GetProjectName(ctx, db, projectID); err != nil {
		return nil, err
	}
	t := model.ClientTestimonialModel{
		ProjectID:      projectID,
		ClientName:     req.ClientName,
		ClientPosition: req.ClientPosition,
		ClientCompany:  req.ClientCompany,
		Testimonial:    req.Testimonial,
		Rating:         req.Rating,
		Approved:       req.Approved,
	}
	if err := db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ToggleApproval flips the approved flag and returns the new value.
func ToggleApproval(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var t model.ClientTestimonialModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTestimonialNotFound
			}
			return err
		}
		t.Approved = !t.Approved
		return tx.Model(&t).UpdateColumn("approved", t.Approved).Error
	})
	return t.Approved, err
}

func DeleteTestimonial(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var t model.ClientTestimonialModel
	if err := db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTestimonialNotFound
		}
		return "", err
	}
	if err := db.WithContext(ctx).Delete(&t).Error; err != nil {
		return "", err
	}
	return t.ClientName, nil
}
