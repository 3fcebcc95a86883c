package dto

import (
	"strings"
	"time"

	"axflo_backend/internals/features/projects/projects/model"
	helpers "axflo_backend/internals/helpers"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type ProjectRequest struct {
	Name                string   `json:"name" form:"name" validate:"required,max=200"`
	Client              string   `json:"client" form:"client" validate:"required,max=200"`
	Description         string   `json:"description" form:"description" validate:"required"`
	DetailedDescription string   `json:"detailed_description" form:"detailed_description"`
	StartDate           string   `json:"start_date" form:"start_date" validate:"required,datetime=2006-01-02"`
	CompletionDate      string   `json:"completion_date" form:"completion_date" validate:"omitempty,datetime=2006-01-02"`
	CategoryID          uint     `json:"category" form:"category" validate:"required"`
	Status              string   `json:"status" form:"status" validate:"required,oneof=PLANNING IN_PROGRESS COMPLETED ON_HOLD CANCELLED"`
	Location            string   `json:"location" form:"location" validate:"max=200"`
	ProjectValue        *float64 `json:"project_value" form:"-" validate:"omitempty,gte=0"`
	Featured            bool     `json:"featured" form:"-"`
}

func (r *ProjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Client = strings.TrimSpace(r.Client)
	r.Description = strings.TrimSpace(r.Description)
	r.DetailedDescription = strings.TrimSpace(r.DetailedDescription)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.CompletionDate = strings.TrimSpace(r.CompletionDate)
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	r.Location = strings.TrimSpace(r.Location)
	if r.Status == "" {
		r.Status = model.StatusPlanning
	}
}

// Dates returns the parsed start and completion dates. Both were
// checked by the datetime validator.
func (r *ProjectRequest) Dates() (time.Time, *time.Time) {
	start, _ := time.Parse(helpers.DateLayout, r.StartDate)
	if r.CompletionDate == "" {
		return start, nil
	}
	done, err := time.Parse(helpers.DateLayout, r.CompletionDate)
	if err != nil {
		return start, nil
	}
	return start, &done
}

// ProjectImageRequest accompanies the "image" upload.
type ProjectImageRequest struct {
	Caption      string `json:"caption" form:"caption" validate:"max=200"`
	DisplayOrder int    `json:"display_order" form:"-" validate:"gte=0"`
	IsFeatured   bool   `json:"is_featured" form:"-"`
}

type TestimonialRequest struct {
	ClientName     string `json:"client_name" form:"client_name" validate:"required,max=200"`
	ClientPosition string `json:"client_position" form:"client_position" validate:"max=200"`
	ClientCompany  string `json:"client_company" form:"client_company" validate:"max=200"`
	Testimonial    string `json:"testimonial" form:"testimonial" validate:"required"`
	Rating         int    `json:"rating" form:"-" validate:"gte=1,lte=5"`
	Approved       bool   `json:"approved" form:"-"`
}

func (r *TestimonialRequest) Normalize() {
	r.ClientName = strings.TrimSpace(r.ClientName)
	r.ClientPosition = strings.TrimSpace(r.ClientPosition)
	r.ClientCompany = strings.TrimSpace(r.ClientCompany)
	r.Testimonial = strings.TrimSpace(r.Testimonial)
}

type Filter struct {
	Status   string // all | enum
	Category string // all | id
	Search   string
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type ProjectImageDTO struct {
	ID           uint   `json:"id"`
	Image        string `json:"image"`
	Caption      string `json:"caption"`
	DisplayOrder int    `json:"display_order"`
	IsFeatured   bool   `json:"is_featured"`
}

type TestimonialDTO struct {
	ID             uint      `json:"id"`
	ClientName     string    `json:"client_name"`
	ClientPosition string    `json:"client_position"`
	ClientCompany  string    `json:"client_company"`
	Testimonial    string    `json:"testimonial"`
	Rating         int       `json:"rating"`
	Approved       bool      `json:"approved"`
	DateGiven      time.Time `json:"date_given"`
}

func FromTestimonial(t *model.ClientTestimonialModel) TestimonialDTO {
	return TestimonialDTO{
		ID:             t.ID,
		ClientName:     t.ClientName,
		ClientPosition: t.ClientPosition,
		ClientCompany:  t.ClientCompany,
		Testimonial:    t.Testimonial,
		Rating:         t.Rating,
		Approved:       t.Approved,
		DateGiven:      t.DateGiven,
	}
}

type ProjectDTO struct {
	ID                  uint              `json:"id"`
	Name                string            `json:"name"`
	Client              string            `json:"client"`
	Description         string            `json:"description"`
	DetailedDescription string            `json:"detailed_description"`
	StartDate           time.Time         `json:"start_date"`
	CompletionDate      *time.Time        `json:"completion_date"`
	CategoryID          uint              `json:"category_id"`
	CategoryName        string            `json:"category_name"`
	Status              string            `json:"status"`
	StatusDisplay       string            `json:"status_display"`
	Location            string            `json:"location"`
	ProjectValue        *float64          `json:"project_value"`
	Featured            bool              `json:"featured"`
	CreatedAt           time.Time         `json:"created_at"`
	Images              []ProjectImageDTO `json:"images"`
	Testimonials        []TestimonialDTO  `json:"testimonials"`
}

// FromProject maps a project with whatever images and testimonials were
// preloaded.
func FromProject(m *model.ProjectModel, mediaURL func(string) string) ProjectDTO {
	d := ProjectDTO{
		ID:                  m.ID,
		Name:                m.Name,
		Client:              m.Client,
		Description:         m.Description,
		DetailedDescription: m.DetailedDescription,
		StartDate:           m.StartDate,
		CompletionDate:      m.CompletionDate,
		CategoryID:          m.CategoryID,
		Status:              m.Status,
		StatusDisplay:       model.StatusLabels[m.Status],
		Location:            m.Location,
		ProjectValue:        m.ProjectValue,
		Featured:            m.Featured,
		CreatedAt:           m.CreatedAt,
		Images:              make([]ProjectImageDTO, 0, len(m.Images)),
		Testimonials:        make([]TestimonialDTO, 0, len(m.Testimonials)),
	}
	if m.Category != nil {
		d.CategoryName = m.Category.Name
	}
	for _, img := range m.Images {
		d.Images = append(d.Images, ProjectImageDTO{
			ID:           img.ID,
			Image:        mediaURL(img.Image),
			Caption:      img.Caption,
			DisplayOrder: img.DisplayOrder,
			IsFeatured:   img.IsFeatured,
		})
	}
	for i := range m.Testimonials {
		d.Testimonials = append(d.Testimonials, FromTestimonial(&m.Testimonials[i]))
	}
	return d
}

func FromProjects(rows []model.ProjectModel, mediaURL func(string) string) []ProjectDTO {
	out := make([]ProjectDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromProject(&rows[i], mediaURL))
	}
	return out
}

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func StatusChoices() []Choice {
	out := make([]Choice, 0, len(model.StatusLabels))
	for _, v := range []string{model.StatusPlanning, model.StatusInProgress, model.StatusCompleted, model.StatusOnHold, model.StatusCancelled} {
		out = append(out, Choice{v, model.StatusLabels[v]})
	}
	return out
}
