package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/features/careers/jobs/dto"
	"axflo_backend/internals/features/careers/jobs/model"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const (
	MsgApplicationIncomplete = "Please fill in all required fields and upload your resume."
	MsgInvalidPosting        = "Invalid job posting or position is no longer available."
	MsgApplicationFailed     = "An error occurred while submitting your application. Please try again later."
	MsgGeneralThanks         = "Thank you for submitting your resume! We will review your application and contact you if suitable opportunities arise."

	MsgPostingIncomplete = "Please fill in all required fields."
	MsgPostingNotFound   = "Job posting not found."
	MsgInvalidStatus     = "Invalid status"
)

var (
	ErrApplicationIncomplete = errors.New(MsgApplicationIncomplete)
	ErrInvalidPosting        = errors.New(MsgInvalidPosting)
	ErrPostingNotFound       = fiber.NewError(fiber.StatusNotFound, MsgPostingNotFound)
	ErrApplicationNotFound   = fiber.NewError(fiber.StatusNotFound, "Application not found")
	ErrJobCategoryNotFound   = fiber.NewError(fiber.StatusNotFound, "Job category not found")
)

/* ======================= PUBLIC ======================= */

// ActivePostings lists ACTIVE postings newest first. limit <= 0 means all.
func ActivePostings(ctx context.Context, db *gorm.DB, limit int) ([]model.JobPostingModel, error) {
	q := db.WithContext(ctx).
		Where("status = ?", model.JobStatusActive).
		Order("posted_date DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []model.JobPostingModel
	err := q.Find(&rows).Error
	return rows, err
}

// generalPosting returns the sentinel posting, creating it on first use.
func generalPosting(tx *gorm.DB) (*model.JobPostingModel, error) {
	p := model.JobPostingModel{}
	err := tx.Where("title = ?", model.GeneralApplicationTitle).
		Attrs(model.JobPostingModel{
			Title:          model.GeneralApplicationTitle,
			Description:    "General application for future opportunities",
			Requirements:   "Open to various qualifications",
			Location:       "Various",
			Department:     "Human Resources",
			EmploymentType: model.EmploymentFullTime,
			Status:         model.JobStatusActive,
		}).
		FirstOrCreate(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SubmitApplication stores the resume and records the application. The
// returned message is the one shown to the applicant.
func SubmitApplication(ctx context.Context, db *gorm.DB, blob storage.BlobService, req *dto.JobApplicationRequest, resume *multipart.FileHeader) (*model.JobApplicationModel, string, error) {
	req.Normalize()
	if req.FullName == "" || req.Email == "" || req.Phone == "" || req.Experience == "" ||
		req.Education == "" || req.CoverLetter == "" || resume == nil {
		return nil, "", ErrApplicationIncomplete
	}

	var posting *model.JobPostingModel
	if req.JobID != "" {
		id, err := strconv.ParseUint(req.JobID, 10, 64)
		if err != nil {
			return nil, "", ErrInvalidPosting
		}
		var p model.JobPostingModel
		err = db.WithContext(ctx).
			Where("id = ? AND status = ?", id, model.JobStatusActive).
			First(&p).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrInvalidPosting
			}
			return nil, "", err
		}
		posting = &p
	}

	rel, err := blob.Save(ctx, storage.DirResumes, resume)
	if err != nil {
		return nil, "", err
	}

	first, last := helpers.SplitFullName(req.FullName)
	app := model.JobApplicationModel{
		FirstName:   helpers.Truncate(first, 100),
		LastName:    helpers.Truncate(last, 100),
		Email:       req.Email,
		Phone:       helpers.Truncate(req.Phone, 20),
		Experience:  req.Experience,
		Education:   req.Education,
		Resume:      rel,
		CoverLetter: req.CoverLetter,
		Status:      model.ApplicationSubmitted,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if posting == nil {
			p, err := generalPosting(tx)
			if err != nil {
				return err
			}
			posting = p
		}
		app.JobPostingID = posting.ID
		return tx.Create(&app).Error
	})
	if err != nil {
		storage.DeleteQuietly(ctx, blob, rel)
		return nil, "", err
	}
	app.JobPosting = posting

	msg := MsgGeneralThanks
	if req.JobID != "" {
		msg = fmt.Sprintf("Thank you for applying to %s! We will review your application and get back to you soon.", posting.Title)
	}
	return &app, msg, nil
}

/* ======================= POSTINGS ======================= */

func postingQuery(db *gorm.DB, f dto.PostingFilter) *gorm.DB {
	q := db.Model(&model.JobPostingModel{})
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	q = helpers.SearchAny(q, f.Department, "department")
	return helpers.SearchAny(q, f.Search, "title", "description", "requirements", "location")
}

func ListPostings(ctx context.Context, db *gorm.DB, f dto.PostingFilter, p helpers.Paging) ([]model.JobPostingModel, int64, helpers.Paging, error) {
	var total int64
	if err := postingQuery(db.WithContext(ctx), f).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)
	var rows []model.JobPostingModel
	err := postingQuery(db.WithContext(ctx), f).
		Order("posted_date DESC").Order("id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

type PostingTotals struct {
	Total    int64 `json:"total_jobs"`
	Active   int64 `json:"active_jobs"`
	Inactive int64 `json:"inactive_jobs"`
}

func CountPostings(ctx context.Context, db *gorm.DB) (PostingTotals, error) {
	var t PostingTotals
	base := func() *gorm.DB { return db.WithContext(ctx).Model(&model.JobPostingModel{}) }
	if err := base().Count(&t.Total).Error; err != nil {
		return t, err
	}
	if err := base().Where("status = ?", model.JobStatusActive).Count(&t.Active).Error; err != nil {
		return t, err
	}
	err := base().Where("status = ?", model.JobStatusInactive).Count(&t.Inactive).Error
	return t, err
}

// PostingsByTitle feeds the job filter dropdown.
func PostingsByTitle(ctx context.Context, db *gorm.DB) ([]model.JobPostingModel, error) {
	var rows []model.JobPostingModel
	err := db.WithContext(ctx).Order("title ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func GetPosting(ctx context.Context, db *gorm.DB, id uint) (*model.JobPostingModel, error) {
	var p model.JobPostingModel
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, err
	}
	return &p, nil
}

func validatePosting(req *dto.JobPostingRequest) error {
	if !req.HasRequired() {
		return fiber.NewError(fiber.StatusBadRequest, MsgPostingIncomplete)
	}
	if !model.IsValidEmploymentType(req.EmploymentType) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid employment type.")
	}
	if !model.IsValidJobStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid job status.")
	}
	return nil
}

// CreatePosting always starts ACTIVE.
func CreatePosting(ctx context.Context, db *gorm.DB, req *dto.JobPostingRequest) (*model.JobPostingModel, error) {
	req.Normalize()
	req.Status = model.JobStatusActive
	if err := validatePosting(req); err != nil {
		return nil, err
	}
	p := model.JobPostingModel{
		Title:          helpers.Truncate(req.Title, 200),
		Description:    req.Description,
		Requirements:   req.Requirements,
		Location:       helpers.Truncate(req.Location, 200),
		Department:     helpers.Truncate(req.Department, 200),
		EmploymentType: req.EmploymentType,
		SalaryRange:    helpers.Truncate(req.SalaryRange, 100),
		Status:         req.Status,
		ClosingDate:    req.ClosingDatePtr(),
	}
	if err := db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func UpdatePosting(ctx context.Context, db *gorm.DB, id uint, req *dto.JobPostingRequest) (*model.JobPostingModel, error) {
	req.Normalize()
	if err := validatePosting(req); err != nil {
		return nil, err
	}
	p, err := GetPosting(ctx, db, id)
	if err != nil {
		return nil, err
	}
	p.Title = helpers.Truncate(req.Title, 200)
	p.Description = req.Description
	p.Requirements = req.Requirements
	p.Location = helpers.Truncate(req.Location, 200)
	p.Department = helpers.Truncate(req.Department, 200)
	p.EmploymentType = req.EmploymentType
	p.SalaryRange = helpers.Truncate(req.SalaryRange, 100)
	p.Status = req.Status
	p.ClosingDate = req.ClosingDatePtr()

	err = db.WithContext(ctx).Model(p).Select(
		"title", "description", "requirements", "location", "department",
		"employment_type", "salary_range", "status", "closing_date",
	).Updates(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePosting removes the posting and its applications. Stored resumes
// are left on disk.
func DeletePosting(ctx context.Context, db *gorm.DB, id uint) (string, int64, error) {
	var (
		title string
		n     int64
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.JobPostingModel
		if err := tx.Select("id", "title").First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostingNotFound
			}
			return err
		}
		title = p.Title
		res := tx.Where("job_posting_id = ?", id).Delete(&model.JobApplicationModel{})
		if res.Error != nil {
			return res.Error
		}
		n = res.RowsAffected
		return tx.Delete(&model.JobPostingModel{}, id).Error
	})
	return title, n, err
}

/* ======================= APPLICATIONS ======================= */

func applicationQuery(db *gorm.DB, f dto.ApplicationFilter) *gorm.DB {
	q := db.Model(&model.JobApplicationModel{}).
		Joins("LEFT JOIN job_postings ON job_postings.id = job_applications.job_posting_id")
	if f.Status != "" && f.Status != "all" {
		q = q.Where("job_applications.status = ?", f.Status)
	}
	if f.Job != "" && f.Job != "all" {
		q = q.Where("job_applications.job_posting_id = ?", f.Job)
	}
	return helpers.SearchAny(q, f.Search,
		"job_applications.first_name", "job_applications.last_name",
		"job_applications.email", "job_postings.title")
}

func ListApplications(ctx context.Context, db *gorm.DB, f dto.ApplicationFilter, p helpers.Paging) ([]model.JobApplicationModel, int64, helpers.Paging, error) {
	var total int64
	if err := applicationQuery(db.WithContext(ctx), f).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)
	var rows []model.JobApplicationModel
	err := applicationQuery(db.WithContext(ctx), f).
		Preload("JobPosting").
		Order("job_applications.application_date DESC").Order("job_applications.id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

func ExportApplications(ctx context.Context, db *gorm.DB, f dto.ApplicationFilter) ([]model.JobApplicationModel, error) {
	var rows []model.JobApplicationModel
	err := applicationQuery(db.WithContext(ctx), f).
		Preload("JobPosting").
		Order("job_applications.application_date DESC").Order("job_applications.id DESC").
		Find(&rows).Error
	return rows, err
}

// StatusCounts maps every application status to its row count, zeros
// included.
func StatusCounts(ctx context.Context, db *gorm.DB) (map[string]int64, int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := db.WithContext(ctx).Model(&model.JobApplicationModel{}).
		Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	out := make(map[string]int64, len(model.ApplicationStatuses))
	for _, s := range model.ApplicationStatuses {
		out[s] = 0
	}
	var total int64
	for _, r := range rows {
		out[r.Status] = r.N
		total += r.N
	}
	return out, total, nil
}

func GetApplication(ctx context.Context, db *gorm.DB, id uint) (*model.JobApplicationModel, error) {
	var a model.JobApplicationModel
	if err := db.WithContext(ctx).Preload("JobPosting").First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &a, nil
}

func UpdateApplicationStatus(ctx context.Context, db *gorm.DB, id uint, status string) (*model.JobApplicationModel, error) {
	if !model.IsValidApplicationStatus(status) {
		return nil, fiber.NewError(fiber.StatusBadRequest, MsgInvalidStatus)
	}
	a, err := GetApplication(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(a).Update("status", status).Error; err != nil {
		return nil, err
	}
	a.Status = status
	return a, nil
}

func UpdateApplicationNotes(ctx context.Context, db *gorm.DB, id uint, notes string) (*model.JobApplicationModel, error) {
	a, err := GetApplication(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(a).Update("notes", notes).Error; err != nil {
		return nil, err
	}
	a.Notes = notes
	return a, nil
}

// DeleteApplication removes the row, then tries to remove the resume file.
func DeleteApplication(ctx context.Context, db *gorm.DB, blob storage.BlobService, id uint) (*model.JobApplicationModel, error) {
	a, err := GetApplication(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(&model.JobApplicationModel{}, a.ID).Error; err != nil {
		return nil, err
	}
	storage.DeleteQuietly(ctx, blob, a.Resume)
	return a, nil
}

/* ======================= JOB CATEGORIES ======================= */

func ListJobCategories(ctx context.Context, db *gorm.DB) ([]model.JobCategoryModel, error) {
	var rows []model.JobCategoryModel
	err := db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func CreateJobCategory(ctx context.Context, db *gorm.DB, req *dto.JobCategoryRequest) (*model.JobCategoryModel, error) {
	row := model.JobCategoryModel{Name: req.Name, Description: req.Description}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteJobCategory also removes the projects filed under it, along with
// their images and testimonials.
func DeleteJobCategory(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var name string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.JobCategoryModel
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobCategoryNotFound
			}
			return err
		}
		name = row.Name
		sub := tx.Table("projects").Select("id").Where("category_id = ?", id)
		if err := tx.Exec("DELETE FROM project_images WHERE project_id IN (?)", sub).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM client_testimonials WHERE project_id IN (?)", sub).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM projects WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&row).Error
	})
	return name, err
}
