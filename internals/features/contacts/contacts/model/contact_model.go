package model

import (
	"time"

	"github.com/google/uuid"

	userModel "axflo_backend/internals/features/users/user/model"
)

// InquiryCategoryModel classifies a contact form submission ("Career Opportunities", ...).
type InquiryCategoryModel struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InquiryCategoryModel) TableName() string {
	return "inquiry_categories"
}

type ContactSubmissionModel struct {
	ID            uint                  `gorm:"column:id;primaryKey" json:"id"`
	Name          string                `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Email         string                `gorm:"column:email;type:varchar(254);not null" json:"email"`
	Company       string                `gorm:"column:company;type:varchar(200)" json:"company"`
	Phone         string                `gorm:"column:phone;type:varchar(20)" json:"phone"`
	InquiryTypeID uint                  `gorm:"column:inquiry_type_id;not null;index" json:"inquiry_type_id"`
	InquiryType   *InquiryCategoryModel `gorm:"foreignKey:InquiryTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"inquiry_type,omitempty"`
	Message       string                `gorm:"column:message;type:text;not null" json:"message"`
	Date          time.Time             `gorm:"column:date;autoCreateTime;index" json:"date"`
	Read          bool                  `gorm:"column:read;not null;index" json:"read"`
}

func (ContactSubmissionModel) TableName() string {
	return "contact_submissions"
}

// ContactResponseModel is append-only.
type ContactResponseModel struct {
	ID                  uint                    `gorm:"column:id;primaryKey" json:"id"`
	ContactSubmissionID uint                    `gorm:"column:contact_submission_id;not null;index" json:"contact_submission_id"`
	ContactSubmission   *ContactSubmissionModel `gorm:"foreignKey:ContactSubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ResponseText        string                  `gorm:"column:response_text;type:text;not null" json:"response_text"`
	ResponseDate        time.Time               `gorm:"column:response_date;autoCreateTime" json:"response_date"`
	StaffMemberID       uuid.UUID               `gorm:"column:staff_member_id;type:uuid;not null;index" json:"staff_member_id"`
	StaffMember         *userModel.UserModel    `gorm:"foreignKey:StaffMemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"staff_member,omitempty"`
}

func (ContactResponseModel) TableName() string {
	return "contact_responses"
}
