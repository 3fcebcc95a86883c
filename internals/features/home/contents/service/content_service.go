package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"axflo_backend/internals/features/home/contents/dto"
	"axflo_backend/internals/features/home/contents/model"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const (
	MsgCompanyInfoExists = "Company information already exists. Edit the existing entry instead."
	serviceSlugMax       = 220
)

var (
	ErrContentNotFound  = fiber.NewError(fiber.StatusNotFound, "Content block not found.")
	ErrServiceNotFound  = fiber.NewError(fiber.StatusNotFound, "Service not found.")
	ErrCompanyInfoExist = fiber.NewError(fiber.StatusConflict, MsgCompanyInfoExists)
	ErrCompanyInfoNone  = fiber.NewError(fiber.StatusNotFound, "Company information has not been created yet.")
)

/* ======================= PAGE CONTENT ======================= */

// PageSections returns every block of a page ordered by section.
func PageSections(ctx context.Context, db *gorm.DB, page string) ([]model.PageContentModel, error) {
	var rows []model.PageContentModel
	err := db.WithContext(ctx).
		Where("page_name = ?", page).
		Order("section ASC").
		Find(&rows).Error
	return rows, err
}

// ListPageContents is the admin table; page "" or "all" means every page.
func ListPageContents(ctx context.Context, db *gorm.DB, page string) ([]model.PageContentModel, error) {
	q := db.WithContext(ctx).Preload("UpdatedBy")
	if page != "" && page != "all" {
		q = q.Where("page_name = ?", page)
	}
	var rows []model.PageContentModel
	err := q.Order("page_name ASC").Order("section ASC").Find(&rows).Error
	return rows, err
}

// PageNames feeds the page filter.
func PageNames(ctx context.Context, db *gorm.DB) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).Model(&model.PageContentModel{}).
		Distinct("page_name").Order("page_name ASC").
		Pluck("page_name", &names).Error
	return names, err
}

// UpsertPageContent writes the block addressed by (page_name, section).
// created reports whether the row is new.
func UpsertPageContent(ctx context.Context, db *gorm.DB, editor uuid.UUID, req *dto.PageContentRequest) (row *model.PageContentModel, created bool, err error) {
	var editorID *uuid.UUID
	if editor != uuid.Nil {
		editorID = &editor
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.PageContentModel{}).
			Where("page_name = ? AND section = ?", req.PageName, req.Section).
			Count(&n).Error; err != nil {
			return err
		}
		created = n == 0

		row = &model.PageContentModel{
			PageName:    req.PageName,
			Section:     req.Section,
			Content:     req.Content,
			UpdatedByID: editorID,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "page_name"}, {Name: "section"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_by_id", "last_updated"}),
		}).Omit(clause.Associations).Create(row).Error; err != nil {
			return err
		}
		return tx.Where("page_name = ? AND section = ?", req.PageName, req.Section).First(row).Error
	})
	if err != nil {
		return nil, false, err
	}
	return row, created, nil
}

func DeletePageContent(ctx context.Context, db *gorm.DB, id uint) (*model.PageContentModel, error) {
	var row model.PageContentModel
	if err := db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

/* ======================= SERVICES ======================= */

// ActiveServices lists the services shown on the site, in display order.
func ActiveServices(ctx context.Context, db *gorm.DB) ([]model.ServiceDescriptionModel, error) {
	var rows []model.ServiceDescriptionModel
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").Order("service_name ASC").
		Find(&rows).Error
	return rows, err
}

// ServiceBySlug only matches active services.
func ServiceBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.ServiceDescriptionModel, error) {
	var row model.ServiceDescriptionModel
	err := db.WithContext(ctx).First(&row, "slug = ? AND active = ?", slug, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &row, nil
}

func ListServices(ctx context.Context, db *gorm.DB, search string) ([]model.ServiceDescriptionModel, error) {
	q := helpers.SearchAny(db.WithContext(ctx).Model(&model.ServiceDescriptionModel{}), search, "service_name", "description")
	var rows []model.ServiceDescriptionModel
	err := q.Order("sort_order ASC").Order("service_name ASC").Find(&rows).Error
	return rows, err
}

func GetService(ctx context.Context, db *gorm.DB, id uint) (*model.ServiceDescriptionModel, error) {
	var row model.ServiceDescriptionModel
	if err := db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &row, nil
}

// SaveService creates (id 0) or updates a service. A blank slug is derived
// from the name; either way it is made unique.
func SaveService(ctx context.Context, db *gorm.DB, blob storage.BlobService, id uint, req *dto.ServiceRequest, image *multipart.FileHeader) (*model.ServiceDescriptionModel, error) {
	gallery, err := helpers.ParseJSONList("gallery images", req.GalleryImages)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	var newImage string
	if image != nil {
		if newImage, err = blob.SaveImage(ctx, storage.DirServices, image); err != nil {
			return nil, err
		}
	}

	var (
		row      model.ServiceDescriptionModel
		oldImage string
	)
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if id > 0 {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrServiceNotFound
				}
				return err
			}
		}
		base := req.Slug
		if base == "" {
			base = req.ServiceName
		}
		slug, err := helpers.EnsureUniqueSlugCI(ctx, tx, model.ServiceDescriptionModel{}.TableName(), "slug",
			helpers.Slugify(base, serviceSlugMax), id, serviceSlugMax)
		if err != nil {
			return err
		}

		row.ServiceName = req.ServiceName
		row.Slug = slug
		row.Description = req.Description
		row.Features = pq.StringArray(req.FeatureList)
		row.GalleryImages = gallery
		row.IconClass = req.IconClass
		row.Order = req.Order
		row.Active = req.Active
		if newImage != "" {
			oldImage = row.MainImage
			row.MainImage = newImage
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		storage.DeleteQuietly(ctx, blob, newImage)
		return nil, err
	}
	storage.DeleteQuietly(ctx, blob, oldImage)
	return &row, nil
}

func DeleteService(ctx context.Context, db *gorm.DB, blob storage.BlobService, id uint) (string, error) {
	row, err := GetService(ctx, db, id)
	if err != nil {
		return "", err
	}
	if err := db.WithContext(ctx).Delete(row).Error; err != nil {
		return "", err
	}
	storage.DeleteQuietly(ctx, blob, row.MainImage)
	return row.ServiceName, nil
}

/* ======================= COMPANY INFO ======================= */

// CompanyInfo returns the single row, or ErrCompanyInfoNone.
func CompanyInfo(ctx context.Context, db *gorm.DB) (*model.CompanyInfoModel, error) {
	var row model.CompanyInfoModel
	if err := db.WithContext(ctx).Order("id ASC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyInfoNone
		}
		return nil, err
	}
	return &row, nil
}

// CreateCompanyInfo is refused once a row exists.
func CreateCompanyInfo(ctx context.Context, db *gorm.DB, req *dto.CompanyInfoRequest) (*model.CompanyInfoModel, error) {
	var row model.CompanyInfoModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.CompanyInfoModel{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrCompanyInfoExist
		}
		req.Apply(&row)
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func UpdateCompanyInfo(ctx context.Context, db *gorm.DB, req *dto.CompanyInfoRequest) (*model.CompanyInfoModel, error) {
	row, err := CompanyInfo(ctx, db)
	if err != nil {
		return nil, err
	}
	req.Apply(row)
	if err := db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
