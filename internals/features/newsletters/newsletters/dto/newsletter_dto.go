package dto

import (
	"strings"
	"time"

	"axflo_backend/internals/features/newsletters/newsletters/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// SubscribeRequest is the public subscribe form. InterestIDs is filled from
// the repeated "interests" field.
type SubscribeRequest struct {
	Email       string `form:"email"`
	FirstName   string `form:"first_name"`
	LastName    string `form:"last_name"`
	InterestIDs []uint `form:"-"`
}

func (r *SubscribeRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

// NewsletterRequest backs create and edit.
type NewsletterRequest struct {
	Title           string
	Content         string
	HTMLContent     string
	CategoryIDs     []uint
	SendImmediately bool
}

func (r *NewsletterRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.HTMLContent = strings.TrimSpace(r.HTMLContent)
}

type SubscriptionCategoryRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

func (r *SubscriptionCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

type SubscriberFilter struct {
	Status string // all | active | inactive
	Search string
}

type NewsletterFilter struct {
	Status string // all | sent | draft
	Search string
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type CategoryRefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func refs(rows []model.SubscriptionCategoryModel) []CategoryRefDTO {
	out := make([]CategoryRefDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryRefDTO{ID: r.ID, Name: r.Name})
	}
	return out
}

type SubscriberDTO struct {
	ID               uint             `json:"id"`
	Email            string           `json:"email"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	SubscriptionDate time.Time        `json:"subscription_date"`
	ActiveStatus     bool             `json:"active_status"`
	Interests        []CategoryRefDTO `json:"interests"`
}

func FromSubscriber(m *model.SubscriberModel) SubscriberDTO {
	return SubscriberDTO{
		ID:               m.ID,
		Email:            m.Email,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		SubscriptionDate: m.SubscriptionDate,
		ActiveStatus:     m.ActiveStatus,
		Interests:        refs(m.Interests),
	}
}

func FromSubscribers(rows []model.SubscriberModel) []SubscriberDTO {
	out := make([]SubscriberDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromSubscriber(&rows[i]))
	}
	return out
}

type NewsletterDTO struct {
	ID             uint             `json:"id"`
	Title          string           `json:"title"`
	Content        string           `json:"content"`
	HTMLContent    string           `json:"html_content"`
	SendDate       *time.Time       `json:"send_date"`
	RecipientCount int              `json:"recipient_count"`
	Categories     []CategoryRefDTO `json:"categories"`
	CreatedDate    time.Time        `json:"created_date"`
	Sent           bool             `json:"sent"`
}

func FromNewsletter(m *model.NewsletterModel) NewsletterDTO {
	return NewsletterDTO{
		ID:             m.ID,
		Title:          m.Title,
		Content:        m.Content,
		HTMLContent:    m.HTMLContent,
		SendDate:       m.SendDate,
		RecipientCount: m.RecipientCount,
		Categories:     refs(m.Categories),
		CreatedDate:    m.CreatedDate,
		Sent:           m.Sent,
	}
}

func FromNewsletters(rows []model.NewsletterModel) []NewsletterDTO {
	out := make([]NewsletterDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromNewsletter(&rows[i]))
	}
	return out
}

type SubscriptionCategoryDTO struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	SubscriberCount int64  `json:"subscriber_count"`
	NewsletterCount int64  `json:"newsletter_count"`
}

func FromCategories(rows []model.SubscriptionCategoryModel) []CategoryRefDTO {
	return refs(rows)
}
