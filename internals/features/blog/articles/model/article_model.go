package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "axflo_backend/internals/features/users/user/model"
	helpers "axflo_backend/internals/helpers"
)

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

var StatusLabels = map[string]string{
	StatusDraft:     "Draft",
	StatusPublished: "Published",
	StatusArchived:  "Archived",
}

func IsValidStatus(v string) bool {
	_, ok := StatusLabels[v]
	return ok
}

const SlugMaxLen = 200

type BlogCategoryModel struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Slug        string `gorm:"column:slug;type:varchar(120);not null;uniqueIndex" json:"slug"`
}

func (BlogCategoryModel) TableName() string {
	return "blog_categories"
}

type NewsArticleModel struct {
	ID              uint                 `gorm:"column:id;primaryKey" json:"id"`
	Title           string               `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Slug            string               `gorm:"column:slug;type:varchar(220);not null;uniqueIndex" json:"slug"`
	Excerpt         *string              `gorm:"column:excerpt;type:varchar(300)" json:"excerpt"`
	Content         string               `gorm:"column:content;type:text;not null" json:"content"`
	Image           string               `gorm:"column:image;type:varchar(255)" json:"image"`
	ImageURL        *string              `gorm:"column:image_url;type:varchar(500)" json:"image_url"`
	ImageAlt        string               `gorm:"column:image_alt;type:varchar(200)" json:"image_alt"`
	CategoryID      *uint                `gorm:"column:category_id;index" json:"category_id"`
	Category        *BlogCategoryModel   `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	AuthorID        *uuid.UUID           `gorm:"column:author_id;type:uuid;index" json:"author_id"`
	Author          *userModel.UserModel `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author,omitempty"`
	Tags            string               `gorm:"column:tags;type:varchar(200)" json:"tags"`
	MetaDescription string               `gorm:"column:meta_description;type:varchar(160)" json:"meta_description"`
	Status          string               `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	Featured        bool                 `gorm:"column:featured;not null" json:"featured"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	PublishedAt     *time.Time           `gorm:"column:published_at;index" json:"published_at"`
	ViewCount       int                  `gorm:"column:view_count;not null" json:"view_count"`
}

func (NewsArticleModel) TableName() string {
	return "news_articles"
}

// BeforeSave fills a missing slug and stamps published_at the first time the
// article is saved as PUBLISHED. published_at is never refreshed afterwards.
func (a *NewsArticleModel) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(a.Slug) == "" {
		a.Slug = helpers.Slugify(a.Title, SlugMaxLen)
	}
	if a.Status == "" {
		a.Status = StatusDraft
	}
	if a.Status == StatusPublished && a.PublishedAt == nil {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}
	return nil
}

// TagsList splits the comma-separated tags.
func (a *NewsArticleModel) TagsList() []string {
	return helpers.SplitTags(a.Tags)
}

// DisplayImage prefers the uploaded file over the external url. Empty when
// neither is set.
func (a *NewsArticleModel) DisplayImage() string {
	if a.Image != "" {
		return a.Image
	}
	if a.ImageURL != nil {
		return *a.ImageURL
	}
	return ""
}
