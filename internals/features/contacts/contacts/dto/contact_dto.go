package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"axflo_backend/internals/features/contacts/contacts/model"
	helpers "axflo_backend/internals/helpers"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// ContactSubmitRequest is the public contact form.
type ContactSubmitRequest struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Company     string `json:"company" form:"company"`
	Phone       string `json:"phone" form:"phone"`
	InquiryType string `json:"inquiry_type" form:"inquiry_type"`
	Message     string `json:"message" form:"message"`
}

func (r *ContactSubmitRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Company = strings.TrimSpace(r.Company)
	r.Phone = strings.TrimSpace(r.Phone)
	r.InquiryType = strings.TrimSpace(r.InquiryType)
	r.Message = strings.TrimSpace(r.Message)
}

type ContactReplyRequest struct {
	ResponseText string `json:"response_text" form:"response_text"`
}

type BulkDeleteRequest struct {
	ContactIDs helpers.FlexibleIDs `json:"contact_ids"`
}

type InquiryCategoryRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Description string `json:"description" form:"description"`
}

func (r *InquiryCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// ListFilter mirrors the admin contacts query string.
type ListFilter struct {
	Status      string // all | read | unread
	InquiryType string // "all" or a category id
	Search      string
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type InquiryCategoryDTO struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	SubmissionCount *int64    `json:"submission_count,omitempty"`
}

type ContactSubmissionDTO struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Company     string              `json:"company"`
	Phone       string              `json:"phone"`
	InquiryType *InquiryCategoryDTO `json:"inquiry_type"`
	Message     string              `json:"message"`
	Date        time.Time           `json:"date"`
	Read        bool                `json:"read"`
}

type StaffMemberDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
}

type ContactResponseDTO struct {
	ID           uint            `json:"id"`
	ResponseText string          `json:"response_text"`
	ResponseDate time.Time       `json:"response_date"`
	StaffMember  *StaffMemberDTO `json:"staff_member"`
}

func FromInquiryCategory(m *model.InquiryCategoryModel) InquiryCategoryDTO {
	return InquiryCategoryDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func FromInquiryCategories(rows []model.InquiryCategoryModel) []InquiryCategoryDTO {
	out := make([]InquiryCategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromInquiryCategory(&rows[i]))
	}
	return out
}

func FromSubmission(m *model.ContactSubmissionModel) ContactSubmissionDTO {
	d := ContactSubmissionDTO{
		ID:      m.ID,
		Name:    m.Name,
		Email:   m.Email,
		Company: m.Company,
		Phone:   m.Phone,
		Message: m.Message,
		Date:    m.Date,
		Read:    m.Read,
	}
	if m.InquiryType != nil {
		cat := FromInquiryCategory(m.InquiryType)
		d.InquiryType = &cat
	}
	return d
}

func FromSubmissions(rows []model.ContactSubmissionModel) []ContactSubmissionDTO {
	out := make([]ContactSubmissionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromSubmission(&rows[i]))
	}
	return out
}

func FromResponse(m *model.ContactResponseModel) ContactResponseDTO {
	d := ContactResponseDTO{
		ID:           m.ID,
		ResponseText: m.ResponseText,
		ResponseDate: m.ResponseDate,
	}
	if m.StaffMember != nil {
		d.StaffMember = &StaffMemberDTO{
			ID:       m.StaffMember.ID,
			Username: m.StaffMember.Username,
			FullName: m.StaffMember.FullName(),
		}
	}
	return d
}

func FromResponses(rows []model.ContactResponseModel) []ContactResponseDTO {
	out := make([]ContactResponseDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromResponse(&rows[i]))
	}
	return out
}
