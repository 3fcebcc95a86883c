package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"axflo_backend/internals/features/contacts/contacts/dto"
	"axflo_backend/internals/features/contacts/contacts/model"
	helpers "axflo_backend/internals/helpers"
)

const (
	MsgMissingFields      = "Please fill in all required fields."
	MsgInvalidInquiryType = "Invalid inquiry type selected."
	MsgThankYou           = "Thank you for your message! We will get back to you soon."
	MsgGenericFailure     = "An error occurred. Please try again later."
	MsgNotFound           = "Contact submission not found."
	MsgResponseSent       = "Response sent successfully!"
	MsgResponseEmpty      = "Please enter a response."
)

var (
	ErrMissingFields      = errors.New(MsgMissingFields)
	ErrInvalidInquiryType = errors.New(MsgInvalidInquiryType)
	ErrNotFound           = fiber.NewError(fiber.StatusNotFound, MsgNotFound)
	ErrCategoryNotFound   = fiber.NewError(fiber.StatusNotFound, "Inquiry category not found.")
)

/* ======================= PUBLIC SUBMIT ======================= */

// CreateSubmission validates the public form and stores an unread row.
func CreateSubmission(ctx context.Context, db *gorm.DB, req *dto.ContactSubmitRequest) (*model.ContactSubmissionModel, error) {
	req.Normalize()
	if req.Name == "" || req.Email == "" || req.Message == "" || req.InquiryType == "" {
		return nil, ErrMissingFields
	}
	catID, err := strconv.ParseUint(req.InquiryType, 10, 64)
	if err != nil {
		return nil, ErrInvalidInquiryType
	}

	var cat model.InquiryCategoryModel
	if err := db.WithContext(ctx).First(&cat, "id = ?", catID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInquiryType
		}
		return nil, err
	}

	row := model.ContactSubmissionModel{
		Name:          req.Name,
		Email:         req.Email,
		Company:       helpers.Truncate(req.Company, 200),
		Phone:         helpers.Truncate(req.Phone, 20),
		InquiryTypeID: cat.ID,
		Message:       req.Message,
		Read:          false,
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	row.InquiryType = &cat
	return &row, nil
}

/* ======================= ADMIN LIST ======================= */

func filtered(db *gorm.DB, f dto.ListFilter) *gorm.DB {
	q := db.Model(&model.ContactSubmissionModel{})
	switch f.Status {
	case "read":
		q = q.Where("read = ?", true)
	case "unread":
		q = q.Where("read = ?", false)
	}
	if f.InquiryType != "" && f.InquiryType != "all" {
		q = q.Where("inquiry_type_id = ?", f.InquiryType)
	}
	return helpers.SearchAny(q, f.Search, "name", "email", "company", "message")
}

// ListSubmissions returns one page, newest first. The page is clamped onto
// the last page when it runs past the end.
func ListSubmissions(ctx context.Context, db *gorm.DB, f dto.ListFilter, p helpers.Paging) ([]model.ContactSubmissionModel, int64, helpers.Paging, error) {
	var total int64
	if err := filtered(db.WithContext(ctx), f).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)

	var rows []model.ContactSubmissionModel
	err := filtered(db.WithContext(ctx), f).
		Preload("InquiryType").
		Order("date DESC").Order("id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

// ExportSubmissions returns every row matching f, newest first.
func ExportSubmissions(ctx context.Context, db *gorm.DB, f dto.ListFilter) ([]model.ContactSubmissionModel, error) {
	var rows []model.ContactSubmissionModel
	err := filtered(db.WithContext(ctx), f).
		Preload("InquiryType").
		Order("date DESC").Order("id DESC").
		Find(&rows).Error
	return rows, err
}

type Totals struct {
	Total  int64 `json:"total_contacts"`
	Unread int64 `json:"unread_contacts"`
	Read   int64 `json:"read_contacts"`
}

func CountTotals(ctx context.Context, db *gorm.DB) (Totals, error) {
	var t Totals
	q := db.WithContext(ctx).Model(&model.ContactSubmissionModel{})
	if err := q.Count(&t.Total).Error; err != nil {
		return t, err
	}
	if err := db.WithContext(ctx).Model(&model.ContactSubmissionModel{}).
		Where("read = ?", false).Count(&t.Unread).Error; err != nil {
		return t, err
	}
	t.Read = t.Total - t.Unread
	return t, nil
}

/* ======================= DETAIL ======================= */

func GetSubmission(ctx context.Context, db *gorm.DB, id uint) (*model.ContactSubmissionModel, error) {
	var row model.ContactSubmissionModel
	if err := db.WithContext(ctx).Preload("InquiryType").First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// MarkRead flips read to true on first view. No-op when already read.
func MarkRead(ctx context.Context, db *gorm.DB, row *model.ContactSubmissionModel) error {
	if row.Read {
		return nil
	}
	if err := db.WithContext(ctx).Model(row).Update("read", true).Error; err != nil {
		return err
	}
	row.Read = true
	return nil
}

func ListResponses(ctx context.Context, db *gorm.DB, submissionID uint) ([]model.ContactResponseModel, error) {
	var rows []model.ContactResponseModel
	err := db.WithContext(ctx).
		Preload("StaffMember").
		Where("contact_submission_id = ?", submissionID).
		Order("response_date DESC").Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func AddResponse(ctx context.Context, db *gorm.DB, submissionID uint, staffID uuid.UUID, text string) (*model.ContactResponseModel, error) {
	row := model.ContactResponseModel{
		ContactSubmissionID: submissionID,
		ResponseText:        text,
		StaffMemberID:       staffID,
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ToggleRead inverts the read flag and returns the new value.
func ToggleRead(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var read bool
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.ContactSubmissionModel
		if err := tx.Select("id", "read").First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		read = !row.Read
		return tx.Model(&row).Update("read", read).Error
	})
	return read, err
}

/* ======================= DELETE ======================= */

// DeleteSubmission removes the row and its responses. Returns the sender
// name for the confirmation message.
func DeleteSubmission(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var name string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.ContactSubmissionModel
		if err := tx.Select("id", "name").First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		name = row.Name
		if err := tx.Where("contact_submission_id = ?", id).Delete(&model.ContactResponseModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ContactSubmissionModel{}, id).Error
	})
	return name, err
}

// BulkDelete removes every listed submission that exists and reports how
// many were deleted.
func BulkDelete(ctx context.Context, db *gorm.DB, ids []uint) (int64, error) {
	var deleted int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_submission_id IN ?", ids).Delete(&model.ContactResponseModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&model.ContactSubmissionModel{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

/* ======================= INQUIRY CATEGORIES ======================= */

func ListCategories(ctx context.Context, db *gorm.DB) ([]model.InquiryCategoryModel, error) {
	var rows []model.InquiryCategoryModel
	err := db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

// CategoryUsage maps category id to its number of submissions.
func CategoryUsage(ctx context.Context, db *gorm.DB) (map[uint]int64, error) {
	type row struct {
		InquiryTypeID uint
		N             int64
	}
	var rows []row
	err := db.WithContext(ctx).Model(&model.ContactSubmissionModel{}).
		Select("inquiry_type_id, COUNT(*) AS n").
		Group("inquiry_type_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.InquiryTypeID] = r.N
	}
	return out, nil
}

func CreateCategory(ctx context.Context, db *gorm.DB, req *dto.InquiryCategoryRequest) (*model.InquiryCategoryModel, error) {
	row := model.InquiryCategoryModel{Name: req.Name, Description: req.Description}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func UpdateCategory(ctx context.Context, db *gorm.DB, id uint, req *dto.InquiryCategoryRequest) (*model.InquiryCategoryModel, error) {
	var row model.InquiryCategoryModel
	if err := db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	row.Name = req.Name
	row.Description = req.Description
	if err := db.WithContext(ctx).Model(&row).Select("name", "description").Updates(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteCategory refuses while any submission still references the category.
func DeleteCategory(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var name string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.InquiryCategoryModel
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		name = row.Name

		var n int64
		if err := tx.Model(&model.ContactSubmissionModel{}).
			Where("inquiry_type_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusConflict, fmt.Sprintf(
				"Cannot delete inquiry category \"%s\" because it has %d contact submissions.", row.Name, n))
		}
		return tx.Delete(&row).Error
	})
	return name, err
}
