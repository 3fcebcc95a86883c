package dto

import (
	"encoding/json"
	"strings"
	"time"

	"axflo_backend/internals/features/home/contents/model"
	helpers "axflo_backend/internals/helpers"
)

/* ========================= PAGE CONTENT ========================= */

type PageContentRequest struct {
	PageName string `json:"page_name" form:"page_name" validate:"required,max=100"`
	Section  string `json:"section" form:"section" validate:"required,max=100"`
	Content  string `json:"content" form:"content" validate:"required"`
}

// Normalize lowercases the address so "About"/"about" hit the same row.
func (r *PageContentRequest) Normalize() {
	r.PageName = strings.ToLower(strings.TrimSpace(r.PageName))
	r.Section = strings.ToLower(strings.TrimSpace(r.Section))
	r.Content = strings.TrimSpace(r.Content)
}

type PageContentDTO struct {
	ID          uint      `json:"id"`
	PageName    string    `json:"page_name"`
	Section     string    `json:"section"`
	Content     string    `json:"content"`
	LastUpdated time.Time `json:"last_updated"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
}

func FromPageContent(m *model.PageContentModel) PageContentDTO {
	d := PageContentDTO{
		ID:          m.ID,
		PageName:    m.PageName,
		Section:     m.Section,
		Content:     m.Content,
		LastUpdated: m.LastUpdated,
	}
	if m.UpdatedBy != nil {
		d.UpdatedBy = m.UpdatedBy.Username
	}
	return d
}

func FromPageContents(rows []model.PageContentModel) []PageContentDTO {
	out := make([]PageContentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromPageContent(&rows[i]))
	}
	return out
}

// SectionMap is the public shape: section -> content.
func SectionMap(rows []model.PageContentModel) map[string]string {
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Section] = r.Content
	}
	return out
}

/* ========================= SERVICES ========================= */

// ServiceRequest is posted as a form. Features are one per line;
// gallery_images is a JSON array of urls.
type ServiceRequest struct {
	ServiceName   string   `json:"service_name" form:"service_name" validate:"required,max=200"`
	Slug          string   `json:"slug" form:"slug" validate:"max=220"`
	Description   string   `json:"description" form:"description" validate:"required"`
	Features      string   `json:"-" form:"features"`
	FeatureList   []string `json:"features" form:"-"`
	GalleryImages string   `json:"gallery_images" form:"gallery_images"`
	IconClass     string   `json:"icon_class" form:"icon_class" validate:"max=50"`
	Order         int      `json:"order" form:"-"`
	Active        bool     `json:"active" form:"-"`
}

func (r *ServiceRequest) Normalize() {
	r.ServiceName = strings.TrimSpace(r.ServiceName)
	r.Slug = strings.TrimSpace(r.Slug)
	r.Description = strings.TrimSpace(r.Description)
	r.GalleryImages = strings.TrimSpace(r.GalleryImages)
	r.IconClass = strings.TrimSpace(r.IconClass)
	if len(r.FeatureList) == 0 && r.Features != "" {
		for _, line := range strings.Split(r.Features, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				r.FeatureList = append(r.FeatureList, line)
			}
		}
	}
}

type ServiceDTO struct {
	ID            uint        `json:"id"`
	ServiceName   string      `json:"service_name"`
	Slug          string      `json:"slug"`
	Description   string      `json:"description"`
	Features      []string    `json:"features"`
	MainImage     interface{} `json:"main_image"`
	GalleryImages []string    `json:"gallery_images"`
	IconClass     string      `json:"icon_class"`
	Order         int         `json:"order"`
	Active        bool        `json:"active"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func FromService(m *model.ServiceDescriptionModel, imageURL func(string) interface{}) ServiceDTO {
	d := ServiceDTO{
		ID:            m.ID,
		ServiceName:   m.ServiceName,
		Slug:          m.Slug,
		Description:   m.Description,
		Features:      []string(m.Features),
		MainImage:     imageURL(m.MainImage),
		GalleryImages: []string{},
		IconClass:     m.IconClass,
		Order:         m.Order,
		Active:        m.Active,
		UpdatedAt:     m.UpdatedAt,
	}
	if d.Features == nil {
		d.Features = []string{}
	}
	if len(m.GalleryImages) > 0 {
		_ = json.Unmarshal(m.GalleryImages, &d.GalleryImages)
	}
	return d
}

func FromServices(rows []model.ServiceDescriptionModel, imageURL func(string) interface{}) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromService(&rows[i], imageURL))
	}
	return out
}

/* ========================= COMPANY INFO ========================= */

type CompanyInfoRequest struct {
	AboutText         string `json:"about_text" form:"about_text" validate:"required"`
	Mission           string `json:"mission" form:"mission" validate:"required"`
	Vision            string `json:"vision" form:"vision" validate:"required"`
	Achievements      string `json:"achievements" form:"achievements" validate:"required"`
	FoundedYear       *int   `json:"founded_year" form:"-" validate:"omitempty,gte=1800,lte=2100"`
	EmployeeCount     string `json:"employee_count" form:"employee_count" validate:"max=50"`
	CountriesServed   *int   `json:"countries_served" form:"-" validate:"omitempty,gte=0"`
	ProjectsCompleted *int   `json:"projects_completed" form:"-" validate:"omitempty,gte=0"`
}

func (r *CompanyInfoRequest) Normalize() {
	r.AboutText = strings.TrimSpace(r.AboutText)
	r.Mission = strings.TrimSpace(r.Mission)
	r.Vision = strings.TrimSpace(r.Vision)
	r.Achievements = strings.TrimSpace(r.Achievements)
	r.EmployeeCount = helpers.Truncate(strings.TrimSpace(r.EmployeeCount), 50)
}

func (r *CompanyInfoRequest) Apply(m *model.CompanyInfoModel) {
	m.AboutText = r.AboutText
	m.Mission = r.Mission
	m.Vision = r.Vision
	m.Achievements = r.Achievements
	m.FoundedYear = r.FoundedYear
	m.EmployeeCount = r.EmployeeCount
	m.CountriesServed = r.CountriesServed
	m.ProjectsCompleted = r.ProjectsCompleted
}
