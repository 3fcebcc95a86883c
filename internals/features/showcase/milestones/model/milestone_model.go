package model

import (
	"time"

	"gorm.io/gorm"
)

type CompanyMilestoneModel struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"id"`
	Title         string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Description   string    `gorm:"column:description;type:text;not null" json:"description"`
	MilestoneDate time.Time `gorm:"column:milestone_date;type:date;not null;index" json:"milestone_date"`
	MilestoneYear int       `gorm:"column:milestone_year;not null;index" json:"milestone_year"`
	Icon          string    `gorm:"column:icon;type:varchar(50)" json:"icon"`
	Image         string    `gorm:"column:image;type:varchar(255)" json:"image"`
	DisplayOrder  int       `gorm:"column:display_order;not null" json:"display_order"`
	Featured      bool      `gorm:"column:featured;not null;index" json:"featured"`
}

func (CompanyMilestoneModel) TableName() string {
	return "company_milestones"
}

// BeforeSave keeps milestone_year in step with milestone_date.
func (m *CompanyMilestoneModel) BeforeSave(tx *gorm.DB) error {
	if !m.MilestoneDate.IsZero() {
		m.MilestoneYear = m.MilestoneDate.Year()
	}
	return nil
}
