package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	userModel "axflo_backend/internals/features/users/user/model"
)

// PageContentModel is an editable text block addressed by (page_name, section).
type PageContentModel struct {
	ID          uint                 `gorm:"column:id;primaryKey" json:"id"`
	PageName    string               `gorm:"column:page_name;type:varchar(100);not null;uniqueIndex:uq_page_contents_page_section,priority:1" json:"page_name"`
	Section     string               `gorm:"column:section;type:varchar(100);not null;uniqueIndex:uq_page_contents_page_section,priority:2" json:"section"`
	Content     string               `gorm:"column:content;type:text;not null" json:"content"`
	LastUpdated time.Time            `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
	UpdatedByID *uuid.UUID           `gorm:"column:updated_by_id;type:uuid;index" json:"updated_by_id"`
	UpdatedBy   *userModel.UserModel `gorm:"foreignKey:UpdatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (PageContentModel) TableName() string {
	return "page_contents"
}

type ServiceDescriptionModel struct {
	ID            uint           `gorm:"column:id;primaryKey" json:"id"`
	ServiceName   string         `gorm:"column:service_name;type:varchar(200);not null" json:"service_name"`
	Slug          string         `gorm:"column:slug;type:varchar(220);not null;uniqueIndex" json:"slug"`
	Description   string         `gorm:"column:description;type:text;not null" json:"description"`
	Features      pq.StringArray `gorm:"column:features;type:text[]" json:"features"`
	MainImage     string         `gorm:"column:main_image;type:varchar(255)" json:"main_image"`
	GalleryImages datatypes.JSON `gorm:"column:gallery_images" json:"gallery_images"`
	IconClass     string         `gorm:"column:icon_class;type:varchar(50)" json:"icon_class"`
	Order         int            `gorm:"column:sort_order;not null;index" json:"order"`
	Active        bool           `gorm:"column:active;not null;index" json:"active"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ServiceDescriptionModel) TableName() string {
	return "service_descriptions"
}

// CompanyInfoModel holds at most one row.
type CompanyInfoModel struct {
	ID                uint      `gorm:"column:id;primaryKey" json:"id"`
	AboutText         string    `gorm:"column:about_text;type:text;not null" json:"about_text"`
	Mission           string    `gorm:"column:mission;type:text;not null" json:"mission"`
	Vision            string    `gorm:"column:vision;type:text;not null" json:"vision"`
	Achievements      string    `gorm:"column:achievements;type:text;not null" json:"achievements"`
	FoundedYear       *int      `gorm:"column:founded_year" json:"founded_year"`
	EmployeeCount     string    `gorm:"column:employee_count;type:varchar(50)" json:"employee_count"`
	CountriesServed   *int      `gorm:"column:countries_served" json:"countries_served"`
	ProjectsCompleted *int      `gorm:"column:projects_completed" json:"projects_completed"`
	LastUpdated       time.Time `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
}

func (CompanyInfoModel) TableName() string {
	return "company_info"
}
