package dto

import (
	"strings"

	"axflo_backend/internals/features/showcase/milestones/model"
	helpers "axflo_backend/internals/helpers"
)

const DefaultIcon = "fa-flag"

// MilestoneSaveRequest is the create|update action. The image is read from
// the "image" file field.
type MilestoneSaveRequest struct {
	MilestoneID   string `form:"milestone_id"`
	Title         string `form:"title"`
	Description   string `form:"description"`
	MilestoneDate string `form:"milestone_date"`
	Icon          string `form:"icon"`
	DisplayOrder  string `form:"display_order"`
	Featured      bool   `form:"-"`
}

func (r *MilestoneSaveRequest) Normalize() {
	r.MilestoneID = strings.TrimSpace(r.MilestoneID)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.MilestoneDate = strings.TrimSpace(r.MilestoneDate)
	r.Icon = strings.TrimSpace(r.Icon)
	r.DisplayOrder = strings.TrimSpace(r.DisplayOrder)
	if r.Icon == "" {
		r.Icon = DefaultIcon
	}
}

type MilestoneIDRequest struct {
	MilestoneID string `form:"milestone_id"`
}

type BulkRequest struct {
	BulkAction string `form:"bulk_action"`
	IDs        []uint `form:"-"`
}

type Filter struct {
	Search   string
	Year     string // all | yyyy
	Featured string // all | yes | no
}

type MilestoneDTO struct {
	ID            uint        `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	MilestoneDate string      `json:"milestone_date"`
	MilestoneYear int         `json:"milestone_year"`
	Icon          string      `json:"icon"`
	Featured      bool        `json:"featured"`
	DisplayOrder  int         `json:"display_order"`
	Image         interface{} `json:"image"`
}

func FromMilestone(m *model.CompanyMilestoneModel, imageURL func(string) interface{}) MilestoneDTO {
	icon := m.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	return MilestoneDTO{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		MilestoneDate: m.MilestoneDate.Format(helpers.DateLayout),
		MilestoneYear: m.MilestoneDate.Year(),
		Icon:          icon,
		Featured:      m.Featured,
		DisplayOrder:  m.DisplayOrder,
		Image:         imageURL(m.Image),
	}
}

func FromMilestones(rows []model.CompanyMilestoneModel, imageURL func(string) interface{}) []MilestoneDTO {
	out := make([]MilestoneDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromMilestone(&rows[i], imageURL))
	}
	return out
}
