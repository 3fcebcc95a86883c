package model

import (
	"time"

	jobModel "axflo_backend/internals/features/careers/jobs/model"
)

const (
	StatusPlanning   = "PLANNING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusOnHold     = "ON_HOLD"
	StatusCancelled  = "CANCELLED"
)

var StatusLabels = map[string]string{
	StatusPlanning:   "Planning",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusOnHold:     "On Hold",
	StatusCancelled:  "Cancelled",
}

func IsValidStatus(v string) bool {
	_, ok := StatusLabels[v]
	return ok
}

type ProjectModel struct {
	ID                  uint                       `gorm:"column:id;primaryKey" json:"id"`
	Name                string                     `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Client              string                     `gorm:"column:client;type:varchar(200);not null" json:"client"`
	Description         string                     `gorm:"column:description;type:text;not null" json:"description"`
	DetailedDescription string                     `gorm:"column:detailed_description;type:text" json:"detailed_description"`
	StartDate           time.Time                  `gorm:"column:start_date;type:date;not null" json:"start_date"`
	CompletionDate      *time.Time                 `gorm:"column:completion_date;type:date;index" json:"completion_date"`
	CategoryID          uint                       `gorm:"column:category_id;not null;index" json:"category_id"`
	Category            *jobModel.JobCategoryModel `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category,omitempty"`
	Status              string                     `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	Location            string                     `gorm:"column:location;type:varchar(200)" json:"location"`
	ProjectValue        *float64                   `gorm:"column:project_value;type:numeric(15,2)" json:"project_value"`
	Featured            bool                       `gorm:"column:featured;not null" json:"featured"`
	CreatedAt           time.Time                  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Images              []ProjectImageModel        `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"images,omitempty"`
	Testimonials        []ClientTestimonialModel   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"testimonials,omitempty"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

type ProjectImageModel struct {
	ID           uint   `gorm:"column:id;primaryKey" json:"id"`
	ProjectID    uint   `gorm:"column:project_id;not null;index" json:"project_id"`
	Image        string `gorm:"column:image;type:varchar(255);not null" json:"image"`
	Caption      string `gorm:"column:caption;type:varchar(200)" json:"caption"`
	DisplayOrder int    `gorm:"column:display_order;not null" json:"display_order"`
	IsFeatured   bool   `gorm:"column:is_featured;not null" json:"is_featured"`
}

func (ProjectImageModel) TableName() string {
	return "project_images"
}

const (
	MinRating = 1
	MaxRating = 5
)

type ClientTestimonialModel struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	ClientName     string    `gorm:"column:client_name;type:varchar(200);not null" json:"client_name"`
	ClientPosition string    `gorm:"column:client_position;type:varchar(200)" json:"client_position"`
	ClientCompany  string    `gorm:"column:client_company;type:varchar(200)" json:"client_company"`
	Testimonial    string    `gorm:"column:testimonial;type:text;not null" json:"testimonial"`
	ProjectID      uint      `gorm:"column:project_id;not null;index" json:"project_id"`
	Approved       bool      `gorm:"column:approved;not null;index" json:"approved"`
	Rating         int       `gorm:"column:rating;not null" json:"rating"`
	DateGiven      time.Time `gorm:"column:date_given;type:date;autoCreateTime" json:"date_given"`
}

func (ClientTestimonialModel) TableName() string {
	return "client_testimonials"
}
