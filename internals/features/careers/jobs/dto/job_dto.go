package dto

import (
	"path"
	"strings"
	"time"

	"axflo_backend/internals/constants"
	"axflo_backend/internals/features/careers/jobs/model"
	helpers "axflo_backend/internals/helpers"
)

const requirementsPreview = 4

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// JobApplicationRequest is the multipart careers form. The resume is read
// separately from the "resume" file field.
type JobApplicationRequest struct {
	JobID       string `form:"job_id"`
	FullName    string `form:"fullName"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	Experience  string `form:"experience"`
	Education   string `form:"education"`
	CoverLetter string `form:"coverLetter"`
}

func (r *JobApplicationRequest) Normalize() {
	r.JobID = strings.TrimSpace(r.JobID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Experience = strings.TrimSpace(r.Experience)
	r.Education = strings.TrimSpace(r.Education)
	r.CoverLetter = strings.TrimSpace(r.CoverLetter)
}

// JobPostingRequest backs both create and edit. Status is ignored on create.
type JobPostingRequest struct {
	Title          string `json:"title" form:"title"`
	Description    string `json:"description" form:"description"`
	Requirements   string `json:"requirements" form:"requirements"`
	Location       string `json:"location" form:"location"`
	Department     string `json:"department" form:"department"`
	EmploymentType string `json:"employment_type" form:"employment_type"`
	SalaryRange    string `json:"salary_range" form:"salary_range"`
	Status         string `json:"status" form:"status"`
	ClosingDate    string `json:"closing_date" form:"closing_date"`
}

func (r *JobPostingRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Requirements = strings.TrimSpace(r.Requirements)
	r.Location = strings.TrimSpace(r.Location)
	r.Department = strings.TrimSpace(r.Department)
	r.EmploymentType = strings.TrimSpace(r.EmploymentType)
	r.SalaryRange = strings.TrimSpace(r.SalaryRange)
	r.Status = strings.TrimSpace(r.Status)
	r.ClosingDate = strings.TrimSpace(r.ClosingDate)
	if r.EmploymentType == "" {
		r.EmploymentType = model.EmploymentFullTime
	}
	if r.Status == "" {
		r.Status = model.JobStatusActive
	}
}

func (r *JobPostingRequest) HasRequired() bool {
	return r.Title != "" && r.Description != "" && r.Requirements != "" && r.Location != "" && r.Department != ""
}

// ClosingDatePtr is nil for a blank or malformed date.
func (r *JobPostingRequest) ClosingDatePtr() *time.Time {
	if r.ClosingDate == "" {
		return nil
	}
	t, err := time.Parse(helpers.DateLayout, r.ClosingDate)
	if err != nil {
		return nil
	}
	return &t
}

type ApplicationStatusRequest struct {
	Status string `json:"status" form:"status"`
}

type ApplicationNotesRequest struct {
	Notes string `json:"notes" form:"notes"`
}

type JobCategoryRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Description string `json:"description" form:"description"`
}

func (r *JobCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

type PostingFilter struct {
	Status     string
	Department string
	Search     string
}

type ApplicationFilter struct {
	Status string
	Job    string
	Search string
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type JobPostingDTO struct {
	ID                    uint       `json:"id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	Requirements          string     `json:"requirements"`
	RequirementsList      []string   `json:"requirements_list"`
	Location              string     `json:"location"`
	Department            string     `json:"department"`
	EmploymentType        string     `json:"employment_type"`
	EmploymentTypeDisplay string     `json:"employment_type_display"`
	SalaryRange           string     `json:"salary_range"`
	Status                string     `json:"status"`
	PostedDate            time.Time  `json:"posted_date"`
	ClosingDate           *time.Time `json:"closing_date"`
	ApplicationCount      *int64     `json:"application_count,omitempty"`
}

func FromJobPosting(m *model.JobPostingModel) JobPostingDTO {
	return JobPostingDTO{
		ID:                    m.ID,
		Title:                 m.Title,
		Description:           m.Description,
		Requirements:          m.Requirements,
		RequirementsList:      helpers.SplitRequirements(m.Requirements, requirementsPreview),
		Location:              m.Location,
		Department:            m.Department,
		EmploymentType:        m.EmploymentType,
		EmploymentTypeDisplay: m.EmploymentTypeDisplay(),
		SalaryRange:           m.SalaryRange,
		Status:                m.Status,
		PostedDate:            m.PostedDate,
		ClosingDate:           m.ClosingDate,
	}
}

func FromJobPostings(rows []model.JobPostingModel) []JobPostingDTO {
	out := make([]JobPostingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromJobPosting(&rows[i]))
	}
	return out
}

// ApplicationRowDTO is a line of the applications table.
type ApplicationRowDTO struct {
	ID              uint      `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	JobPostingID    uint      `json:"job_posting_id"`
	JobTitle        string    `json:"job_title"`
	Status          string    `json:"status"`
	StatusDisplay   string    `json:"status_display"`
	ApplicationDate time.Time `json:"application_date"`
}

func FromApplicationRow(m *model.JobApplicationModel) ApplicationRowDTO {
	d := ApplicationRowDTO{
		ID:              m.ID,
		FullName:        m.FullName(),
		Email:           m.Email,
		Phone:           m.Phone,
		JobPostingID:    m.JobPostingID,
		Status:          m.Status,
		StatusDisplay:   m.StatusDisplay(),
		ApplicationDate: m.ApplicationDate,
	}
	if m.JobPosting != nil {
		d.JobTitle = m.JobPosting.Title
	}
	return d
}

func FromApplicationRows(rows []model.JobApplicationModel) []ApplicationRowDTO {
	out := make([]ApplicationRowDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromApplicationRow(&rows[i]))
	}
	return out
}

// ApplicationDetailDTO feeds the detail modal; placeholders stand in for
// empty optional fields.
type ApplicationDetailDTO struct {
	ID              uint        `json:"id"`
	FullName        string      `json:"full_name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Address         string      `json:"address"`
	JobTitle        string      `json:"job_title"`
	JobDepartment   string      `json:"job_department"`
	Status          string      `json:"status"`
	StatusCode      string      `json:"status_code"`
	ApplicationDate string      `json:"application_date"`
	CoverLetter     string      `json:"cover_letter"`
	ResumeURL       interface{} `json:"resume_url"`
	ResumeName      string      `json:"resume_name"`
	ResumeKind      string      `json:"resume_kind"`
	Notes           string      `json:"notes"`
	Experience      string      `json:"experience"`
	Education       string      `json:"education"`
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// FromApplicationDetail takes the resume URL already resolved by the caller.
func FromApplicationDetail(m *model.JobApplicationModel, resumeURL interface{}) ApplicationDetailDTO {
	d := ApplicationDetailDTO{
		ID:              m.ID,
		FullName:        m.FullName(),
		Email:           m.Email,
		Phone:           m.Phone,
		Address:         orDefault(m.Address, "Not provided"),
		Status:          m.StatusDisplay(),
		StatusCode:      m.Status,
		ApplicationDate: m.ApplicationDate.Format("January 02, 2006 at 03:04 PM"),
		CoverLetter:     m.CoverLetter,
		ResumeURL:       resumeURL,
		ResumeName:      "No resume",
		Notes:           orDefault(m.Notes, "No notes added"),
		Experience:      "Not specified",
		Education:       "Not specified",
	}
	if m.JobPosting != nil {
		d.JobTitle = m.JobPosting.Title
		d.JobDepartment = m.JobPosting.Department
	}
	if m.Resume != "" {
		d.ResumeName = path.Base(m.Resume)
		d.ResumeKind = constants.DetectFileKindFromExt(m.Resume)
	}
	if m.Experience != "" {
		d.Experience = m.ExperienceDisplay()
	}
	if m.Education != "" {
		d.Education = m.EducationDisplay()
	}
	return d
}

type JobCategoryDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func FromJobCategories(rows []model.JobCategoryModel) []JobCategoryDTO {
	out := make([]JobCategoryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, JobCategoryDTO{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return out
}

// Choice is a (value, label) pair for select inputs.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func EmploymentTypeChoices() []Choice {
	return []Choice{
		{model.EmploymentFullTime, model.EmploymentTypeLabels[model.EmploymentFullTime]},
		{model.EmploymentPartTime, model.EmploymentTypeLabels[model.EmploymentPartTime]},
		{model.EmploymentContract, model.EmploymentTypeLabels[model.EmploymentContract]},
		{model.EmploymentInternship, model.EmploymentTypeLabels[model.EmploymentInternship]},
	}
}

func JobStatusChoices() []Choice {
	return []Choice{
		{model.JobStatusActive, model.JobStatusLabels[model.JobStatusActive]},
		{model.JobStatusInactive, model.JobStatusLabels[model.JobStatusInactive]},
		{model.JobStatusClosed, model.JobStatusLabels[model.JobStatusClosed]},
	}
}

func ApplicationStatusChoices() []Choice {
	out := make([]Choice, 0, len(model.ApplicationStatuses))
	for _, s := range model.ApplicationStatuses {
		out = append(out, Choice{s, model.ApplicationStatusLabels[s]})
	}
	return out
}
