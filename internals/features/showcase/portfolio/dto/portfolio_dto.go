package dto

import (
	"strconv"
	"strings"
	"time"

	"axflo_backend/internals/features/showcase/portfolio/model"
	helpers "axflo_backend/internals/helpers"
)

/* =======================================================
   REQUEST DTOs (one per action)
   ======================================================= */

// PortfolioSaveRequest is the create|update action. ProjectID is blank on
// create. Images are read from featured_image, before_image and after_image.
type PortfolioSaveRequest struct {
	ProjectID           string `form:"project_id"`
	Title               string `form:"title"`
	Client              string `form:"client"`
	Location            string `form:"location"`
	ProjectType         string `form:"project_type"`
	BriefDescription    string `form:"brief_description"`
	DetailedDescription string `form:"detailed_description"`
	Challenge           string `form:"challenge"`
	Solution            string `form:"solution"`
	Results             string `form:"results"`
	StartDate           string `form:"start_date"`
	CompletionDate      string `form:"completion_date"`
	DurationMonths      string `form:"duration_months"`
	ProjectValue        string `form:"project_value"`
	EnvironmentalImpact string `form:"environmental_impact"`
	KeyStatistics       string `form:"key_statistics"`
	MetaDescription     string `form:"meta_description"`
	Tags                string `form:"tags"`
	Status              string `form:"status"`
	DisplayOrder        string `form:"display_order"`
	FeaturedOnHomepage  bool   `form:"-"`
}

func (r *PortfolioSaveRequest) Normalize() {
	for _, f := range []*string{
		&r.ProjectID, &r.Title, &r.Client, &r.Location, &r.ProjectType,
		&r.BriefDescription, &r.DetailedDescription, &r.Challenge, &r.Solution,
		&r.Results, &r.StartDate, &r.CompletionDate, &r.DurationMonths,
		&r.ProjectValue, &r.EnvironmentalImpact, &r.KeyStatistics,
		&r.MetaDescription, &r.Tags, &r.Status, &r.DisplayOrder,
	} {
		*f = strings.TrimSpace(*f)
	}
	if r.Status == "" {
		r.Status = model.StatusStandard
	}
}

// ProjectIDRequest serves get, delete and toggle_featured.
type ProjectIDRequest struct {
	ProjectID string `form:"project_id"`
}

// BulkRequest is the bulk_action action. IDs come from "project_ids[]".
type BulkRequest struct {
	BulkAction string `form:"bulk_action"`
	IDs        []uint `form:"-"`
}

type Filter struct {
	Search      string
	ProjectType string // all | enum
	Status      string // all | enum
	Year        string // all | yyyy
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

func dateOrBlank(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(helpers.DateLayout)
}

// PortfolioDTO is the get payload used to fill the edit form.
type PortfolioDTO struct {
	ID                  uint        `json:"id"`
	Title               string      `json:"title"`
	Slug                string      `json:"slug"`
	Client              string      `json:"client"`
	Location            string      `json:"location"`
	ProjectType         string      `json:"project_type"`
	ProjectTypeDisplay  string      `json:"project_type_display"`
	BriefDescription    string      `json:"brief_description"`
	DetailedDescription string      `json:"detailed_description"`
	Challenge           string      `json:"challenge"`
	Solution            string      `json:"solution"`
	Results             string      `json:"results"`
	StartDate           string      `json:"start_date"`
	CompletionDate      string      `json:"completion_date"`
	DurationMonths      *int        `json:"duration_months"`
	ProjectValue        string      `json:"project_value"`
	EnvironmentalImpact string      `json:"environmental_impact"`
	KeyStatistics       string      `json:"key_statistics"`
	MetaDescription     string      `json:"meta_description"`
	Tags                string      `json:"tags"`
	Status              string      `json:"status"`
	StatusDisplay       string      `json:"status_display"`
	FeaturedOnHomepage  bool        `json:"featured_on_homepage"`
	DisplayOrder        int         `json:"display_order"`
	FeaturedImage       interface{} `json:"featured_image"`
	BeforeImage         interface{} `json:"before_image"`
	AfterImage          interface{} `json:"after_image"`
	GalleryImages       string      `json:"gallery_images"`
}

func FromPortfolio(m *model.ProjectPortfolioModel, imageURL func(string) interface{}) PortfolioDTO {
	d := PortfolioDTO{
		ID:                  m.ID,
		Title:               m.Title,
		Slug:                m.Slug,
		Client:              m.Client,
		Location:            m.Location,
		ProjectType:         m.ProjectType,
		ProjectTypeDisplay:  m.ProjectTypeDisplay(),
		BriefDescription:    m.BriefDescription,
		DetailedDescription: m.DetailedDescription,
		Challenge:           m.Challenge,
		Solution:            m.Solution,
		Results:             m.Results,
		StartDate:           m.StartDate.Format(helpers.DateLayout),
		CompletionDate:      dateOrBlank(m.CompletionDate),
		DurationMonths:      m.DurationMonths,
		EnvironmentalImpact: helpers.JSONMapString(m.EnvironmentalImpact),
		KeyStatistics:       helpers.JSONMapString(m.KeyStatistics),
		MetaDescription:     m.MetaDescription,
		Tags:                m.Tags,
		Status:              m.Status,
		StatusDisplay:       model.StatusLabels[m.Status],
		FeaturedOnHomepage:  m.FeaturedOnHomepage,
		DisplayOrder:        m.DisplayOrder,
		FeaturedImage:       imageURL(m.FeaturedImage),
		BeforeImage:         imageURL(m.BeforeImage),
		AfterImage:          imageURL(m.AfterImage),
		GalleryImages:       "[]",
	}
	if m.ProjectValue != nil && *m.ProjectValue != 0 {
		d.ProjectValue = strconv.FormatFloat(*m.ProjectValue, 'f', 2, 64)
	}
	if len(m.GalleryImages) > 0 {
		d.GalleryImages = string(m.GalleryImages)
	}
	return d
}

// PortfolioRowDTO is one card of the admin grid.
type PortfolioRowDTO struct {
	ID                 uint        `json:"id"`
	Title              string      `json:"title"`
	Slug               string      `json:"slug"`
	Client             string      `json:"client"`
	Location           string      `json:"location"`
	ProjectType        string      `json:"project_type"`
	ProjectTypeDisplay string      `json:"project_type_display"`
	BriefDescription   string      `json:"brief_description"`
	CompletionDate     string      `json:"completion_date"`
	ProjectValue       *float64    `json:"project_value"`
	Status             string      `json:"status"`
	StatusDisplay      string      `json:"status_display"`
	FeaturedOnHomepage bool        `json:"featured_on_homepage"`
	DisplayOrder       int         `json:"display_order"`
	ViewCount          int         `json:"view_count"`
	FeaturedImage      interface{} `json:"featured_image"`
}

func FromPortfolioRows(rows []model.ProjectPortfolioModel, imageURL func(string) interface{}) []PortfolioRowDTO {
	out := make([]PortfolioRowDTO, 0, len(rows))
	for i := range rows {
		m := &rows[i]
		out = append(out, PortfolioRowDTO{
			ID:                 m.ID,
			Title:              m.Title,
			Slug:               m.Slug,
			Client:             m.Client,
			Location:           m.Location,
			ProjectType:        m.ProjectType,
			ProjectTypeDisplay: m.ProjectTypeDisplay(),
			BriefDescription:   m.BriefDescription,
			CompletionDate:     dateOrBlank(m.CompletionDate),
			ProjectValue:       m.ProjectValue,
			Status:             m.Status,
			StatusDisplay:      model.StatusLabels[m.Status],
			FeaturedOnHomepage: m.FeaturedOnHomepage,
			DisplayOrder:       m.DisplayOrder,
			ViewCount:          m.ViewCount,
			FeaturedImage:      imageURL(m.FeaturedImage),
		})
	}
	return out
}

// PublicPortfolioDTO is the public project page; metadata maps are
// returned as objects rather than text.
type PublicPortfolioDTO struct {
	ID                  uint                   `json:"id"`
	Title               string                 `json:"title"`
	Slug                string                 `json:"slug"`
	Client              string                 `json:"client"`
	Location            string                 `json:"location"`
	ProjectTypeDisplay  string                 `json:"project_type_display"`
	BriefDescription    string                 `json:"brief_description"`
	DetailedDescription string                 `json:"detailed_description"`
	Challenge           string                 `json:"challenge"`
	Solution            string                 `json:"solution"`
	Results             string                 `json:"results"`
	StartDate           time.Time              `json:"start_date"`
	CompletionDate      *time.Time             `json:"completion_date"`
	DurationMonths      *int                   `json:"duration_months"`
	ProjectValue        *float64               `json:"project_value"`
	EnvironmentalImpact map[string]interface{} `json:"environmental_impact"`
	KeyStatistics       map[string]interface{} `json:"key_statistics"`
	Tags                []string               `json:"tags"`
	MetaDescription     string                 `json:"meta_description"`
	Status              string                 `json:"status"`
	FeaturedImage       interface{}            `json:"featured_image"`
	BeforeImage         interface{}            `json:"before_image"`
	AfterImage          interface{}            `json:"after_image"`
	ViewCount           int                    `json:"view_count"`
}

func FromPublicPortfolio(m *model.ProjectPortfolioModel, imageURL func(string) interface{}) PublicPortfolioDTO {
	return PublicPortfolioDTO{
		ID:                  m.ID,
		Title:               m.Title,
		Slug:                m.Slug,
		Client:              m.Client,
		Location:            m.Location,
		ProjectTypeDisplay:  m.ProjectTypeDisplay(),
		BriefDescription:    m.BriefDescription,
		DetailedDescription: m.DetailedDescription,
		Challenge:           m.Challenge,
		Solution:            m.Solution,
		Results:             m.Results,
		StartDate:           m.StartDate,
		CompletionDate:      m.CompletionDate,
		DurationMonths:      m.DurationMonths,
		ProjectValue:        m.ProjectValue,
		EnvironmentalImpact: map[string]interface{}(m.EnvironmentalImpact),
		KeyStatistics:       map[string]interface{}(m.KeyStatistics),
		Tags:                m.TagsList(),
		MetaDescription:     m.MetaDescription,
		Status:              m.Status,
		FeaturedImage:       imageURL(m.FeaturedImage),
		BeforeImage:         imageURL(m.BeforeImage),
		AfterImage:          imageURL(m.AfterImage),
		ViewCount:           m.ViewCount,
	}
}

func FromPublicPortfolios(rows []model.ProjectPortfolioModel, imageURL func(string) interface{}) []PublicPortfolioDTO {
	out := make([]PublicPortfolioDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromPublicPortfolio(&rows[i], imageURL))
	}
	return out
}

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var projectTypeOrder = []string{
	"OIL_SPILL", "WATER_TREATMENT", "ENVIRONMENTAL", "MARINE", "CONSULTANCY", "TRAINING", "TECHNOLOGY",
}

func ProjectTypeChoices() []Choice {
	out := make([]Choice, 0, len(projectTypeOrder))
	for _, v := range projectTypeOrder {
		out = append(out, Choice{v, model.ProjectTypeLabels[v]})
	}
	return out
}

func StatusChoices() []Choice {
	return []Choice{
		{model.StatusFeatured, model.StatusLabels[model.StatusFeatured]},
		{model.StatusStandard, model.StatusLabels[model.StatusStandard]},
		{model.StatusArchived, model.StatusLabels[model.StatusArchived]},
	}
}
