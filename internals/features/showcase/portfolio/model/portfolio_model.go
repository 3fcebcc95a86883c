package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	helpers "axflo_backend/internals/helpers"
)

const (
	StatusFeatured = "FEATURED"
	StatusStandard = "STANDARD"
	StatusArchived = "ARCHIVED"
)

var StatusLabels = map[string]string{
	StatusFeatured: "Featured",
	StatusStandard: "Standard",
	StatusArchived: "Archived",
}

var ProjectTypeLabels = map[string]string{
	"OIL_SPILL":       "Oil Spill Response",
	"WATER_TREATMENT": "Water Treatment",
	"ENVIRONMENTAL":   "Environmental Cleanup",
	"MARINE":          "Marine Services",
	"CONSULTANCY":     "Environmental Consultancy",
	"TRAINING":        "Training Program",
	"TECHNOLOGY":      "Technology Implementation",
}

func IsValidStatus(v string) bool {
	_, ok := StatusLabels[v]
	return ok
}

func IsValidProjectType(v string) bool {
	_, ok := ProjectTypeLabels[v]
	return ok
}

const SlugMaxLen = 200

type ProjectPortfolioModel struct {
	ID                  uint              `gorm:"column:id;primaryKey" json:"id"`
	Title               string            `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Slug                string            `gorm:"column:slug;type:varchar(220);not null;uniqueIndex" json:"slug"`
	Client              string            `gorm:"column:client;type:varchar(200);not null" json:"client"`
	Location            string            `gorm:"column:location;type:varchar(200);not null" json:"location"`
	ProjectType         string            `gorm:"column:project_type;type:varchar(20);not null;index" json:"project_type"`
	BriefDescription    string            `gorm:"column:brief_description;type:varchar(300);not null" json:"brief_description"`
	DetailedDescription string            `gorm:"column:detailed_description;type:text;not null" json:"detailed_description"`
	Challenge           string            `gorm:"column:challenge;type:text" json:"challenge"`
	Solution            string            `gorm:"column:solution;type:text" json:"solution"`
	Results             string            `gorm:"column:results;type:text" json:"results"`
	StartDate           time.Time         `gorm:"column:start_date;type:date;not null" json:"start_date"`
	CompletionDate      *time.Time        `gorm:"column:completion_date;type:date;index" json:"completion_date"`
	ProjectValue        *float64          `gorm:"column:project_value;type:numeric(15,2)" json:"project_value"`
	DurationMonths      *int              `gorm:"column:duration_months" json:"duration_months"`
	FeaturedImage       string            `gorm:"column:featured_image;type:varchar(255)" json:"featured_image"`
	BeforeImage         string            `gorm:"column:before_image;type:varchar(255)" json:"before_image"`
	AfterImage          string            `gorm:"column:after_image;type:varchar(255)" json:"after_image"`
	GalleryImages       datatypes.JSON    `gorm:"column:gallery_images" json:"gallery_images"`
	EnvironmentalImpact datatypes.JSONMap `gorm:"column:environmental_impact" json:"environmental_impact"`
	KeyStatistics       datatypes.JSONMap `gorm:"column:key_statistics" json:"key_statistics"`
	Status              string            `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	FeaturedOnHomepage  bool              `gorm:"column:featured_on_homepage;not null" json:"featured_on_homepage"`
	DisplayOrder        int               `gorm:"column:display_order;not null" json:"display_order"`
	MetaDescription     string            `gorm:"column:meta_description;type:varchar(160)" json:"meta_description"`
	Tags                string            `gorm:"column:tags;type:varchar(200)" json:"tags"`
	ViewCount           int               `gorm:"column:view_count;not null" json:"view_count"`
	CreatedAt           time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProjectPortfolioModel) TableName() string {
	return "project_portfolios"
}

func (p *ProjectPortfolioModel) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = helpers.Slugify(p.Title, SlugMaxLen)
	}
	return nil
}

func (p *ProjectPortfolioModel) ProjectTypeDisplay() string {
	if l, ok := ProjectTypeLabels[p.ProjectType]; ok {
		return l
	}
	return p.ProjectType
}

func (p *ProjectPortfolioModel) TagsList() []string {
	return helpers.SplitTags(p.Tags)
}
