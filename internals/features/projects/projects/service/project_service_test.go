package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	jobModel "axflo_backend/internals/features/careers/jobs/model"
	jobService "axflo_backend/internals/features/careers/jobs/service"
	"axflo_backend/internals/features/projects/projects/dto"
	"axflo_backend/internals/features/projects/projects/model"
	"axflo_backend/internals/features/projects/projects/service"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/testutil"
)

func jobCategory(t *testing.T, db *gorm.DB, name string) jobModel.JobCategoryModel {
	t.Helper()
	c := jobModel.JobCategoryModel{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func projectRequest(catID uint, name, status string) *dto.ProjectRequest {
	req := &dto.ProjectRequest{
		Name:        name,
		Client:      "Shell",
		Description: "Water treatment plant",
		StartDate:   "2021-02-01",
		CategoryID:  catID,
		Status:      status,
	}
	req.Normalize()
	return req
}

func testimonial(name string, rating int, approved bool) *dto.TestimonialRequest {
	return &dto.TestimonialRequest{ClientName: name, Testimonial: "Great work", Rating: rating, Approved: approved}
}

func TestPublicProjectsShowApprovedTestimonialsOnly(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cat := jobCategory(t, db, "Environmental")

	p, err := service.CreateProject(ctx, db, projectRequest(cat.ID, "Plant A", model.StatusCompleted))
	require.NoError(t, err)
	_, err = service.CreateProject(ctx, db, projectRequest(cat.ID, "Plant B", model.StatusCancelled))
	require.NoError(t, err)

	_, err = service.AddTestimonial(ctx, db, p.ID, testimonial("Approved Client", 5, true))
	require.NoError(t, err)
	pending, err := service.AddTestimonial(ctx, db, p.ID, testimonial("Pending Client", 4, false))
	require.NoError(t, err)

	rows, err := service.PublicProjects(ctx, db, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Plant A", rows[0].Name)
	require.Len(t, rows[0].Testimonials, 1)
	assert.Equal(t, "Approved Client", rows[0].Testimonials[0].ClientName)

	approved, err := service.ToggleApproval(ctx, db, pending.ID)
	require.NoError(t, err)
	assert.True(t, approved)

	rows, err = service.PublicProjects(ctx, db, cat.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Testimonials, 2)

	rows, err = service.PublicProjects(ctx, db, cat.ID+100)
	require.NoError(t, err)
	assert.Empty(t, rows)

	full, err := service.GetProject(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Len(t, full.Testimonials, 2)
}

func TestTestimonialRatingBounds(t *testing.T) {
	for _, rating := range []int{0, 6} {
		errs := helpers.ValidateStruct(testimonial("Client", rating, false))
		assert.Contains(t, errs, "rating")
	}
	assert.Empty(t, helpers.ValidateStruct(testimonial("Client", 3, false)))
}

func TestProjectDatesAndCategory(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cat := jobCategory(t, db, "Marine")

	req := projectRequest(cat.ID, "Jetty", "")
	assert.Equal(t, model.StatusPlanning, req.Status)
	req.CompletionDate = "2020-12-31"
	_, err := service.CreateProject(ctx, db, req)
	assert.ErrorIs(t, err, service.ErrCompletionBeforeRun)

	_, err = service.CreateProject(ctx, db, projectRequest(999, "Jetty", model.StatusPlanning))
	assert.ErrorIs(t, err, service.ErrInvalidCategory)

	p, err := service.CreateProject(ctx, db, projectRequest(cat.ID, "Jetty", model.StatusPlanning))
	require.NoError(t, err)

	upd := projectRequest(cat.ID, "Jetty Phase 2", model.StatusCompleted)
	upd.CompletionDate = "2021-02-01"
	got, err := service.UpdateProject(ctx, db, p.ID, upd)
	require.NoError(t, err)
	require.NotNil(t, got.CompletionDate)
	assert.Equal(t, "Jetty Phase 2", got.Name)
}

func TestDeleteProjectAndCategoryCascade(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	cat := jobCategory(t, db, "Consultancy")

	p, err := service.CreateProject(ctx, db, projectRequest(cat.ID, "Audit", model.StatusInProgress))
	require.NoError(t, err)
	_, err = service.AddTestimonial(ctx, db, p.ID, testimonial("Client", 5, true))
	require.NoError(t, err)

	_, err = service.AddImage(ctx, db, blob, p.ID, &dto.ProjectImageRequest{}, nil)
	assert.ErrorIs(t, err, service.ErrImageRequired)

	name, err := service.DeleteProject(ctx, db, blob, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Audit", name)

	var n int64
	require.NoError(t, db.Model(&model.ClientTestimonialModel{}).Count(&n).Error)
	assert.Zero(t, n)

	other, err := service.CreateProject(ctx, db, projectRequest(cat.ID, "Survey", model.StatusPlanning))
	require.NoError(t, err)
	_, err = service.AddTestimonial(ctx, db, other.ID, testimonial("Client", 4, true))
	require.NoError(t, err)

	catName, err := jobService.DeleteJobCategory(ctx, db, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Consultancy", catName)

	_, err = service.GetProject(ctx, db, other.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	require.NoError(t, db.Model(&model.ClientTestimonialModel{}).Count(&n).Error)
	assert.Zero(t, n)
}
