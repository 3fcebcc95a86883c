package model

import (
	"strings"
	"time"
)

const (
	EmploymentFullTime   = "FULL_TIME"
	EmploymentPartTime   = "PART_TIME"
	EmploymentContract   = "CONTRACT"
	EmploymentInternship = "INTERNSHIP"

	JobStatusActive   = "ACTIVE"
	JobStatusInactive = "INACTIVE"
	JobStatusClosed   = "CLOSED"
)

var EmploymentTypeLabels = map[string]string{
	EmploymentFullTime:   "Full Time",
	EmploymentPartTime:   "Part Time",
	EmploymentContract:   "Contract",
	EmploymentInternship: "Internship",
}

var JobStatusLabels = map[string]string{
	JobStatusActive:   "Active",
	JobStatusInactive: "Inactive",
	JobStatusClosed:   "Closed",
}

// GeneralApplicationTitle names the posting that collects applications sent
// without a job_id.
const GeneralApplicationTitle = "General Application"

// JobCategoryModel also categorises projects.
type JobCategoryModel struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (JobCategoryModel) TableName() string {
	return "job_categories"
}

type JobPostingModel struct {
	ID             uint                  `gorm:"column:id;primaryKey" json:"id"`
	Title          string                `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Description    string                `gorm:"column:description;type:text;not null" json:"description"`
	Requirements   string                `gorm:"column:requirements;type:text;not null" json:"requirements"`
	Location       string                `gorm:"column:location;type:varchar(200);not null" json:"location"`
	Department     string                `gorm:"column:department;type:varchar(200);not null" json:"department"`
	EmploymentType string                `gorm:"column:employment_type;type:varchar(20);not null" json:"employment_type"`
	SalaryRange    string                `gorm:"column:salary_range;type:varchar(100)" json:"salary_range"`
	Status         string                `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	PostedDate     time.Time             `gorm:"column:posted_date;autoCreateTime;index" json:"posted_date"`
	ClosingDate    *time.Time            `gorm:"column:closing_date;type:date" json:"closing_date"`
	Applications   []JobApplicationModel `gorm:"foreignKey:JobPostingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (JobPostingModel) TableName() string {
	return "job_postings"
}

func (j *JobPostingModel) EmploymentTypeDisplay() string {
	if l, ok := EmploymentTypeLabels[j.EmploymentType]; ok {
		return l
	}
	return j.EmploymentType
}

func IsValidEmploymentType(v string) bool {
	_, ok := EmploymentTypeLabels[v]
	return ok
}

func IsValidJobStatus(v string) bool {
	_, ok := JobStatusLabels[v]
	return ok
}

const (
	ApplicationSubmitted   = "SUBMITTED"
	ApplicationUnderReview = "UNDER_REVIEW"
	ApplicationShortlisted = "SHORTLISTED"
	ApplicationInterviewed = "INTERVIEWED"
	ApplicationAccepted    = "ACCEPTED"
	ApplicationRejected    = "REJECTED"
)

// ApplicationStatuses is in pipeline order.
var ApplicationStatuses = []string{
	ApplicationSubmitted,
	ApplicationUnderReview,
	ApplicationShortlisted,
	ApplicationInterviewed,
	ApplicationAccepted,
	ApplicationRejected,
}

var ApplicationStatusLabels = map[string]string{
	ApplicationSubmitted:   "Submitted",
	ApplicationUnderReview: "Under Review",
	ApplicationShortlisted: "Shortlisted",
	ApplicationInterviewed: "Interviewed",
	ApplicationAccepted:    "Accepted",
	ApplicationRejected:    "Rejected",
}

var ExperienceLabels = map[string]string{
	"0-2":  "0-2 years",
	"3-5":  "3-5 years",
	"6-10": "6-10 years",
	"10+":  "10+ years",
}

var EducationLabels = map[string]string{
	"bachelor":     "Bachelor's Degree",
	"master":       "Master's Degree",
	"phd":          "PhD",
	"professional": "Professional Certification",
}

type JobApplicationModel struct {
	ID              uint             `gorm:"column:id;primaryKey" json:"id"`
	JobPostingID    uint             `gorm:"column:job_posting_id;not null;index" json:"job_posting_id"`
	JobPosting      *JobPostingModel `gorm:"foreignKey:JobPostingID" json:"job_posting,omitempty"`
	FirstName       string           `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName        string           `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	Email           string           `gorm:"column:email;type:varchar(254);not null" json:"email"`
	Phone           string           `gorm:"column:phone;type:varchar(20);not null" json:"phone"`
	Address         string           `gorm:"column:address;type:text" json:"address"`
	Experience      string           `gorm:"column:experience;type:varchar(10)" json:"experience"`
	Education       string           `gorm:"column:education;type:varchar(20)" json:"education"`
	Resume          string           `gorm:"column:resume;type:varchar(255);not null" json:"resume"`
	CoverLetter     string           `gorm:"column:cover_letter;type:text;not null" json:"cover_letter"`
	Status          string           `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	ApplicationDate time.Time        `gorm:"column:application_date;autoCreateTime;index" json:"application_date"`
	Notes           string           `gorm:"column:notes;type:text" json:"notes"`
}

func (JobApplicationModel) TableName() string {
	return "job_applications"
}

func (a *JobApplicationModel) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

func (a *JobApplicationModel) StatusDisplay() string {
	if l, ok := ApplicationStatusLabels[a.Status]; ok {
		return l
	}
	return a.Status
}

func (a *JobApplicationModel) ExperienceDisplay() string {
	if l, ok := ExperienceLabels[a.Experience]; ok {
		return l
	}
	return a.Experience
}

func (a *JobApplicationModel) EducationDisplay() string {
	if l, ok := EducationLabels[a.Education]; ok {
		return l
	}
	return a.Education
}

func IsValidApplicationStatus(v string) bool {
	_, ok := ApplicationStatusLabels[v]
	return ok
}
