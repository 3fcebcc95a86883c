package dto

import (
	"strings"
	"time"

	"axflo_backend/internals/features/blog/articles/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// ArticleRequest backs create and edit. The uploaded image is read from the
// "image" file field. Featured follows the checkbox convention ("on").
type ArticleRequest struct {
	Title           string `form:"title"`
	Excerpt         string `form:"excerpt"`
	Content         string `form:"content"`
	Status          string `form:"status"`
	CategoryID      string `form:"category"`
	ImageURL        string `form:"image_url"`
	ImageAlt        string `form:"image_alt"`
	Tags            string `form:"tags"`
	MetaDescription string `form:"meta_description"`
	Featured        bool   `form:"-"`
}

func (r *ArticleRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Excerpt = strings.TrimSpace(r.Excerpt)
	r.Content = strings.TrimSpace(r.Content)
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.ImageAlt = strings.TrimSpace(r.ImageAlt)
	r.Tags = strings.TrimSpace(r.Tags)
	r.MetaDescription = strings.TrimSpace(r.MetaDescription)
	if !model.IsValidStatus(r.Status) {
		r.Status = model.StatusDraft
	}
}

// BlogCategoryRequest carries the create/edit/delete form of the categories
// screen. EditID and DeleteID select the operation.
type BlogCategoryRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Description string `json:"description" form:"description"`
	EditID      string `json:"edit_id" form:"edit_id" validate:"-"`
	DeleteID    string `json:"delete_id" form:"delete_id" validate:"-"`
}

func (r *BlogCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.EditID = strings.TrimSpace(r.EditID)
	r.DeleteID = strings.TrimSpace(r.DeleteID)
}

type PublicFilter struct {
	Search   string
	Category string // slug
}

type AdminFilter struct {
	Status   string // all | DRAFT | PUBLISHED | ARCHIVED
	Category string // all | id
	Search   string
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type BlogCategoryDTO struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Slug         string `json:"slug"`
	ArticleCount int64  `json:"article_count"`
}

func FromBlogCategory(m *model.BlogCategoryModel) BlogCategoryDTO {
	return BlogCategoryDTO{ID: m.ID, Name: m.Name, Description: m.Description, Slug: m.Slug}
}

// FromBlogCategories attaches counts when given; a nil map leaves them zero.
func FromBlogCategories(rows []model.BlogCategoryModel, counts map[uint]int64) []BlogCategoryDTO {
	out := make([]BlogCategoryDTO, 0, len(rows))
	for i := range rows {
		d := FromBlogCategory(&rows[i])
		d.ArticleCount = counts[rows[i].ID]
		out = append(out, d)
	}
	return out
}

type AuthorDTO struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type ArticleDTO struct {
	ID              uint             `json:"id"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	Excerpt         string           `json:"excerpt"`
	Content         string           `json:"content,omitempty"`
	Image           string           `json:"image"`
	ImageURL        string           `json:"image_url"`
	DisplayImage    string           `json:"display_image"`
	ImageAlt        string           `json:"image_alt"`
	Category        *BlogCategoryDTO `json:"category"`
	Author          *AuthorDTO       `json:"author"`
	Tags            []string         `json:"tags"`
	MetaDescription string           `json:"meta_description"`
	Status          string           `json:"status"`
	StatusDisplay   string           `json:"status_display"`
	Featured        bool             `json:"featured"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	PublishedAt     *time.Time       `json:"published_at"`
	ViewCount       int              `json:"view_count"`
}

// FromArticle maps a row. mediaURL turns a stored upload path into its
// public url; withBody includes the full content.
func FromArticle(m *model.NewsArticleModel, mediaURL func(string) string, withBody bool) ArticleDTO {
	d := ArticleDTO{
		ID:              m.ID,
		Title:           m.Title,
		Slug:            m.Slug,
		ImageAlt:        m.ImageAlt,
		Tags:            m.TagsList(),
		MetaDescription: m.MetaDescription,
		Status:          m.Status,
		StatusDisplay:   model.StatusLabels[m.Status],
		Featured:        m.Featured,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		PublishedAt:     m.PublishedAt,
		ViewCount:       m.ViewCount,
	}
	if m.Excerpt != nil {
		d.Excerpt = *m.Excerpt
	}
	if m.ImageURL != nil {
		d.ImageURL = *m.ImageURL
	}
	if m.Image != "" {
		d.Image = mediaURL(m.Image)
		d.DisplayImage = d.Image
	} else {
		d.DisplayImage = d.ImageURL
	}
	if withBody {
		d.Content = m.Content
	}
	if m.Category != nil {
		cat := FromBlogCategory(m.Category)
		d.Category = &cat
	}
	if m.Author != nil {
		d.Author = &AuthorDTO{Username: m.Author.Username, FullName: m.Author.FullName()}
	}
	return d
}

func FromArticles(rows []model.NewsArticleModel, mediaURL func(string) string) []ArticleDTO {
	out := make([]ArticleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromArticle(&rows[i], mediaURL, false))
	}
	return out
}

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func StatusChoices() []Choice {
	return []Choice{
		{model.StatusDraft, model.StatusLabels[model.StatusDraft]},
		{model.StatusPublished, model.StatusLabels[model.StatusPublished]},
		{model.StatusArchived, model.StatusLabels[model.StatusArchived]},
	}
}
