package dto

import (
	"strings"
	"time"

	"axflo_backend/internals/features/showcase/achievements/model"
	helpers "axflo_backend/internals/helpers"
)

// Defaults applied by the categories screen when the form leaves them blank.
const (
	FormDefaultIcon  = "fa-tag"
	FormDefaultColor = "#d6a019"
	DisplayIcon      = "fa-trophy"
)

/* =======================================================
   REQUEST DTOs (one per action)
   ======================================================= */

// AchievementSaveRequest is the create|update action. AchievementID is
// blank on create.
type AchievementSaveRequest struct {
	AchievementID    string `form:"achievement_id"`
	Title            string `form:"title"`
	AchievementType  string `form:"achievement_type"`
	CategoryID       string `form:"category"`
	AchievementDate  string `form:"achievement_date"`
	ShortDescription string `form:"short_description"`
	Description      string `form:"description"`
	ExternalLink     string `form:"external_link"`
	ImpactMetrics    string `form:"impact_metrics"`
	Status           string `form:"status"`
	DisplayOrder     string `form:"display_order"`
	Featured         bool   `form:"-"`
}

func (r *AchievementSaveRequest) Normalize() {
	r.AchievementID = strings.TrimSpace(r.AchievementID)
	r.Title = strings.TrimSpace(r.Title)
	r.AchievementType = strings.TrimSpace(r.AchievementType)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.AchievementDate = strings.TrimSpace(r.AchievementDate)
	r.ShortDescription = strings.TrimSpace(r.ShortDescription)
	r.Description = strings.TrimSpace(r.Description)
	r.ExternalLink = strings.TrimSpace(r.ExternalLink)
	r.ImpactMetrics = strings.TrimSpace(r.ImpactMetrics)
	r.Status = strings.TrimSpace(r.Status)
	r.DisplayOrder = strings.TrimSpace(r.DisplayOrder)
	if r.Status == "" {
		r.Status = model.StatusActive
	}
}

// AchievementIDRequest serves get, delete and toggle_featured.
type AchievementIDRequest struct {
	AchievementID string `form:"achievement_id"`
}

// BulkRequest is the bulk_action action. IDs come from "achievement_ids[]".
type BulkRequest struct {
	BulkAction string `form:"bulk_action"`
	IDs        []uint `form:"-"`
}

// CategorySaveRequest is the create|update action of the categories screen.
type CategorySaveRequest struct {
	CategoryID  string `form:"category_id"`
	Name        string `form:"name"`
	Description string `form:"description"`
	Icon        string `form:"icon"`
	Color       string `form:"color"`
}

func (r *CategorySaveRequest) Normalize() {
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Icon = strings.TrimSpace(r.Icon)
	r.Color = strings.TrimSpace(r.Color)
	if r.Icon == "" {
		r.Icon = FormDefaultIcon
	}
	if r.Color == "" {
		r.Color = FormDefaultColor
	}
}

// CategoryIDRequest serves get, view_achievements and delete.
type CategoryIDRequest struct {
	CategoryID string `form:"category_id"`
}

type Filter struct {
	Search   string
	Type     string // all | enum
	Status   string // all | enum
	Category string // all | id
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

// AchievementDTO is the get payload used to fill the edit form.
type AchievementDTO struct {
	ID                     uint        `json:"id"`
	Title                  string      `json:"title"`
	AchievementType        string      `json:"achievement_type"`
	AchievementTypeDisplay string      `json:"achievement_type_display"`
	CategoryID             uint        `json:"category_id"`
	CategoryName           string      `json:"category_name"`
	CategoryColor          string      `json:"category_color"`
	AchievementDate        string      `json:"achievement_date"`
	ShortDescription       string      `json:"short_description"`
	Description            string      `json:"description"`
	ExternalLink           string      `json:"external_link"`
	ImpactMetrics          string      `json:"impact_metrics"`
	Status                 string      `json:"status"`
	StatusDisplay          string      `json:"status_display"`
	Featured               bool        `json:"featured"`
	DisplayOrder           int         `json:"display_order"`
	FeaturedImage          interface{} `json:"featured_image"`
}

func FromAchievement(m *model.AchievementModel, image interface{}) AchievementDTO {
	d := AchievementDTO{
		ID:                     m.ID,
		Title:                  m.Title,
		AchievementType:        m.AchievementType,
		AchievementTypeDisplay: m.TypeDisplay(),
		CategoryID:             m.CategoryID,
		AchievementDate:        m.AchievementDate.Format(helpers.DateLayout),
		ShortDescription:       m.ShortDescription,
		Description:            m.Description,
		ExternalLink:           m.ExternalLink,
		ImpactMetrics:          helpers.JSONMapString(m.ImpactMetrics),
		Status:                 m.Status,
		StatusDisplay:          model.StatusLabels[m.Status],
		Featured:               m.Featured,
		DisplayOrder:           m.DisplayOrder,
		FeaturedImage:          image,
	}
	if m.Category != nil {
		d.CategoryName = m.Category.Name
		d.CategoryColor = m.Category.Color
	}
	return d
}

// AchievementRowDTO is one row of the admin table and of view_achievements.
type AchievementRowDTO struct {
	ID                     uint        `json:"id"`
	Title                  string      `json:"title"`
	ShortDescription       string      `json:"short_description"`
	AchievementType        string      `json:"achievement_type"`
	AchievementTypeDisplay string      `json:"achievement_type_display"`
	CategoryID             uint        `json:"category_id"`
	CategoryName           string      `json:"category_name,omitempty"`
	CategoryColor          string      `json:"category_color,omitempty"`
	AchievementDate        string      `json:"achievement_date"`
	Status                 string      `json:"status"`
	Featured               bool        `json:"featured"`
	DisplayOrder           int         `json:"display_order"`
	ViewCount              int         `json:"view_count"`
	FeaturedImage          interface{} `json:"featured_image"`
}

func FromAchievementRows(rows []model.AchievementModel, imageURL func(string) interface{}) []AchievementRowDTO {
	out := make([]AchievementRowDTO, 0, len(rows))
	for i := range rows {
		m := &rows[i]
		d := AchievementRowDTO{
			ID:                     m.ID,
			Title:                  m.Title,
			ShortDescription:       m.ShortDescription,
			AchievementType:        m.AchievementType,
			AchievementTypeDisplay: m.TypeDisplay(),
			CategoryID:             m.CategoryID,
			AchievementDate:        m.AchievementDate.Format(helpers.DateLayout),
			Status:                 m.Status,
			Featured:               m.Featured,
			DisplayOrder:           m.DisplayOrder,
			ViewCount:              m.ViewCount,
			FeaturedImage:          imageURL(m.FeaturedImage),
		}
		if m.Category != nil {
			d.CategoryName = m.Category.Name
			d.CategoryColor = m.Category.Color
		}
		out = append(out, d)
	}
	return out
}

type CategoryDTO struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Icon             string `json:"icon"`
	Color            string `json:"color"`
	AchievementCount int64  `json:"achievement_count"`
}

// FromCategory fills blank icon and color with the display defaults.
func FromCategory(m *model.AchievementCategoryModel) CategoryDTO {
	d := CategoryDTO{ID: m.ID, Name: m.Name, Description: m.Description, Icon: m.Icon, Color: m.Color}
	if d.Icon == "" {
		d.Icon = DisplayIcon
	}
	if d.Color == "" {
		d.Color = FormDefaultColor
	}
	return d
}

func FromCategories(rows []model.AchievementCategoryModel, counts map[uint]int64) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		d := FromCategory(&rows[i])
		d.AchievementCount = counts[rows[i].ID]
		out = append(out, d)
	}
	return out
}

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func TypeChoices() []Choice {
	return []Choice{
		{model.TypeAward, model.TypeLabels[model.TypeAward]},
		{model.TypeCertification, model.TypeLabels[model.TypeCertification]},
		{model.TypeMilestone, model.TypeLabels[model.TypeMilestone]},
		{model.TypeRecognition, model.TypeLabels[model.TypeRecognition]},
		{model.TypeProjectSuccess, model.TypeLabels[model.TypeProjectSuccess]},
	}
}

func StatusChoices() []Choice {
	return []Choice{
		{model.StatusActive, model.StatusLabels[model.StatusActive]},
		{model.StatusArchived, model.StatusLabels[model.StatusArchived]},
	}
}

// PublicAchievementDTO is the achievements page card.
type PublicAchievementDTO struct {
	ID               uint                   `json:"id"`
	Title            string                 `json:"title"`
	ShortDescription string                 `json:"short_description"`
	Description      string                 `json:"description"`
	AchievementType  string                 `json:"achievement_type"`
	TypeDisplay      string                 `json:"achievement_type_display"`
	Category         *CategoryDTO           `json:"category"`
	AchievementDate  time.Time              `json:"achievement_date"`
	FeaturedImage    interface{}            `json:"featured_image"`
	ImpactMetrics    map[string]interface{} `json:"impact_metrics"`
	ExternalLink     string                 `json:"external_link"`
	Featured         bool                   `json:"featured"`
}

func FromPublicAchievements(rows []model.AchievementModel, imageURL func(string) interface{}) []PublicAchievementDTO {
	out := make([]PublicAchievementDTO, 0, len(rows))
	for i := range rows {
		m := &rows[i]
		d := PublicAchievementDTO{
			ID:               m.ID,
			Title:            m.Title,
			ShortDescription: m.ShortDescription,
			Description:      m.Description,
			AchievementType:  m.AchievementType,
			TypeDisplay:      m.TypeDisplay(),
			AchievementDate:  m.AchievementDate,
			FeaturedImage:    imageURL(m.FeaturedImage),
			ImpactMetrics:    map[string]interface{}(m.ImpactMetrics),
			ExternalLink:     m.ExternalLink,
			Featured:         m.Featured,
		}
		if m.Category != nil {
			cat := FromCategory(m.Category)
			d.Category = &cat
		}
		out = append(out, d)
	}
	return out
}
