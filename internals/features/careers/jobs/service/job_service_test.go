package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"axflo_backend/internals/features/careers/jobs/dto"
	"axflo_backend/internals/features/careers/jobs/model"
	"axflo_backend/internals/features/careers/jobs/service"
	"axflo_backend/internals/helpers/storage"
	"axflo_backend/internals/testutil"
)

func application(jobID string) *dto.JobApplicationRequest {
	return &dto.JobApplicationRequest{
		JobID:       jobID,
		FullName:    "Jane Van Doe",
		Email:       "jane@x.com",
		Phone:       "+2348000000000",
		Experience:  "3-5",
		Education:   "master",
		CoverLetter: "I would like to join.",
	}
}

func posting(t *testing.T, db *gorm.DB, title string) *model.JobPostingModel {
	t.Helper()
	p, err := service.CreatePosting(context.Background(), db, &dto.JobPostingRequest{
		Title:        title,
		Description:  "d",
		Requirements: "r",
		Location:     "Lagos",
		Department:   "Operations",
	})
	require.NoError(t, err)
	return p
}

func resumeExists(t *testing.T, blob *storage.LocalBlobService, rel string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(blob.Root, filepath.FromSlash(rel)))
	return err == nil
}

func TestGeneralApplicationUsesSentinelPosting(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()

	app, msg, err := service.SubmitApplication(ctx, db, blob, application(""), testutil.FileHeader(t, "cv.pdf", []byte("cv")))
	require.NoError(t, err)
	assert.Equal(t, service.MsgGeneralThanks, msg)
	assert.Equal(t, "Jane", app.FirstName)
	assert.Equal(t, "Van Doe", app.LastName)
	assert.Equal(t, model.ApplicationSubmitted, app.Status)
	require.NotNil(t, app.JobPosting)
	assert.Equal(t, model.GeneralApplicationTitle, app.JobPosting.Title)
	assert.True(t, resumeExists(t, blob, app.Resume))

	second, _, err := service.SubmitApplication(ctx, db, blob, application(""), testutil.FileHeader(t, "cv2.pdf", []byte("cv")))
	require.NoError(t, err)
	assert.Equal(t, app.JobPostingID, second.JobPostingID)

	var n int64
	require.NoError(t, db.Model(&model.JobPostingModel{}).Where("title = ?", model.GeneralApplicationTitle).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestApplicationToSpecificPosting(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	p := posting(t, db, "Field Engineer")
	assert.Equal(t, model.JobStatusActive, p.Status)

	app, msg, err := service.SubmitApplication(ctx, db, blob, application(strconv.Itoa(int(p.ID))), testutil.FileHeader(t, "cv.pdf", []byte("cv")))
	require.NoError(t, err)
	assert.Equal(t, p.ID, app.JobPostingID)
	assert.Equal(t, "Thank you for applying to Field Engineer! We will review your application and get back to you soon.", msg)
}

func TestSubmitApplicationRejectsBadInput(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	p := posting(t, db, "Closed Role")
	req := &dto.JobPostingRequest{Title: "Closed Role", Description: "d", Requirements: "r", Location: "Lagos", Department: "Ops", Status: model.JobStatusClosed}
	_, err := service.UpdatePosting(ctx, db, p.ID, req)
	require.NoError(t, err)

	_, _, err = service.SubmitApplication(ctx, db, blob, application(strconv.Itoa(int(p.ID))), testutil.FileHeader(t, "cv.pdf", []byte("cv")))
	assert.ErrorIs(t, err, service.ErrInvalidPosting)

	_, _, err = service.SubmitApplication(ctx, db, blob, application("9999"), testutil.FileHeader(t, "cv.pdf", []byte("cv")))
	assert.ErrorIs(t, err, service.ErrInvalidPosting)

	_, _, err = service.SubmitApplication(ctx, db, blob, application("abc"), testutil.FileHeader(t, "cv.pdf", []byte("cv")))
	assert.ErrorIs(t, err, service.ErrInvalidPosting)

	_, _, err = service.SubmitApplication(ctx, db, blob, application(""), nil)
	assert.ErrorIs(t, err, service.ErrApplicationIncomplete)

	incomplete := application("")
	incomplete.CoverLetter = "  "
	_, _, err = service.SubmitApplication(ctx, db, blob, incomplete, testutil.FileHeader(t, "cv.pdf", []byte("cv")))
	assert.ErrorIs(t, err, service.ErrApplicationIncomplete)

	var n int64
	require.NoError(t, db.Model(&model.JobApplicationModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDeletePostingCascadesApplications(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	p := posting(t, db, "Diver")
	other := posting(t, db, "Chemist")
	id := strconv.Itoa(int(p.ID))

	first, _, err := service.SubmitApplication(ctx, db, blob, application(id), testutil.FileHeader(t, "a.pdf", []byte("a")))
	require.NoError(t, err)
	_, _, err = service.SubmitApplication(ctx, db, blob, application(id), testutil.FileHeader(t, "b.pdf", []byte("b")))
	require.NoError(t, err)
	_, _, err = service.SubmitApplication(ctx, db, blob, application(strconv.Itoa(int(other.ID))), testutil.FileHeader(t, "c.pdf", []byte("c")))
	require.NoError(t, err)

	title, n, err := service.DeletePosting(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diver", title)
	assert.EqualValues(t, 2, n)
	assert.True(t, resumeExists(t, blob, first.Resume))

	var left int64
	require.NoError(t, db.Model(&model.JobApplicationModel{}).Count(&left).Error)
	assert.EqualValues(t, 1, left)

	_, _, err = service.DeletePosting(ctx, db, p.ID)
	assert.ErrorIs(t, err, service.ErrPostingNotFound)
}

func TestApplicationStatusAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()

	app, _, err := service.SubmitApplication(ctx, db, blob, application(""), testutil.FileHeader(t, "cv.pdf", []byte("cv")))
	require.NoError(t, err)

	_, err = service.UpdateApplicationStatus(ctx, db, app.ID, "HIRED")
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Equal(t, service.MsgInvalidStatus, fe.Message)

	updated, err := service.UpdateApplicationStatus(ctx, db, app.ID, model.ApplicationShortlisted)
	require.NoError(t, err)
	assert.Equal(t, "Shortlisted", updated.StatusDisplay())

	_, err = service.UpdateApplicationNotes(ctx, db, app.ID, "call back monday")
	require.NoError(t, err)

	counts, total, err := service.StatusCounts(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.EqualValues(t, 1, counts[model.ApplicationShortlisted])

	deleted, err := service.DeleteApplication(ctx, db, blob, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "call back monday", deleted.Notes)
	assert.False(t, resumeExists(t, blob, app.Resume))

	_, err = service.GetApplication(ctx, db, app.ID)
	assert.ErrorIs(t, err, service.ErrApplicationNotFound)
}
