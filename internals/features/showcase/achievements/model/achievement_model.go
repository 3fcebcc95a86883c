package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TypeAward          = "AWARD"
	TypeCertification  = "CERTIFICATION"
	TypeMilestone      = "MILESTONE"
	TypeRecognition    = "RECOGNITION"
	TypeProjectSuccess = "PROJECT_SUCCESS"

	StatusActive   = "ACTIVE"
	StatusArchived = "ARCHIVED"
)

var TypeLabels = map[string]string{
	TypeAward:          "Award",
	TypeCertification:  "Certification",
	TypeMilestone:      "Milestone",
	TypeRecognition:    "Recognition",
	TypeProjectSuccess: "Project Success",
}

var StatusLabels = map[string]string{
	StatusActive:   "Active",
	StatusArchived: "Archived",
}

func IsValidType(v string) bool {
	_, ok := TypeLabels[v]
	return ok
}

func IsValidStatus(v string) bool {
	_, ok := StatusLabels[v]
	return ok
}

const DefaultCategoryColor = "#007bff"

type AchievementCategoryModel struct {
	ID           uint               `gorm:"column:id;primaryKey" json:"id"`
	Name         string             `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Description  string             `gorm:"column:description;type:text" json:"description"`
	Icon         string             `gorm:"column:icon;type:varchar(50)" json:"icon"`
	Color        string             `gorm:"column:color;type:varchar(7);not null" json:"color"`
	Achievements []AchievementModel `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (AchievementCategoryModel) TableName() string {
	return "achievement_categories"
}

type AchievementModel struct {
	ID               uint                      `gorm:"column:id;primaryKey" json:"id"`
	Title            string                    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Description      string                    `gorm:"column:description;type:text;not null" json:"description"`
	ShortDescription string                    `gorm:"column:short_description;type:varchar(300)" json:"short_description"`
	AchievementType  string                    `gorm:"column:achievement_type;type:varchar(20);not null;index" json:"achievement_type"`
	CategoryID       uint                      `gorm:"column:category_id;not null;index" json:"category_id"`
	Category         *AchievementCategoryModel `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	FeaturedImage    string                    `gorm:"column:featured_image;type:varchar(255)" json:"featured_image"`
	GalleryImages    datatypes.JSON            `gorm:"column:gallery_images" json:"gallery_images"`
	AchievementDate  time.Time                 `gorm:"column:achievement_date;type:date;not null;index" json:"achievement_date"`
	Status           string                    `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	Featured         bool                      `gorm:"column:featured;not null;index" json:"featured"`
	ImpactMetrics    datatypes.JSONMap         `gorm:"column:impact_metrics" json:"impact_metrics"`
	ExternalLink     string                    `gorm:"column:external_link;type:varchar(200)" json:"external_link"`
	DisplayOrder     int                       `gorm:"column:display_order;not null" json:"display_order"`
	ViewCount        int                       `gorm:"column:view_count;not null" json:"view_count"`
	CreatedAt        time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AchievementModel) TableName() string {
	return "achievements"
}

func (a *AchievementModel) TypeDisplay() string {
	if l, ok := TypeLabels[a.AchievementType]; ok {
		return l
	}
	return a.AchievementType
}
