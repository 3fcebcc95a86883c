package service_test

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"axflo_backend/internals/features/showcase/milestones/dto"
	"axflo_backend/internals/features/showcase/milestones/model"
	"axflo_backend/internals/features/showcase/milestones/service"
	"axflo_backend/internals/helpers/storage"
	"axflo_backend/internals/testutil"
)

func newMilestone(t *testing.T, db *gorm.DB, blob storage.BlobService, title string, withImage bool) *model.CompanyMilestoneModel {
	t.Helper()
	req := &dto.MilestoneSaveRequest{Title: title, Description: "d", MilestoneDate: "2018-04-01"}
	var up *multipart.FileHeader
	if withImage {
		up = testutil.FileHeader(t, title+".png", testutil.PNG(t, 8, 8))
	}
	m, _, err := service.SaveMilestone(context.Background(), db, blob, req, up)
	require.NoError(t, err)
	return m
}

func TestMilestoneYearFollowsDate(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()

	m, created, err := service.SaveMilestone(ctx, db, blob, &dto.MilestoneSaveRequest{
		Title: "Founded", Description: "Company incorporated", MilestoneDate: "2009-03-02",
	}, nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2009, m.MilestoneYear)

	m, created, err = service.SaveMilestone(ctx, db, blob, &dto.MilestoneSaveRequest{
		MilestoneID: strconv.Itoa(int(m.ID)), Title: "Founded", Description: "Company incorporated", MilestoneDate: "2010-01-15",
	}, nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 2010, m.MilestoneYear)

	stored, err := service.GetMilestone(ctx, db, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 2010, stored.MilestoneYear)

	_, _, err = service.SaveMilestone(ctx, db, blob, &dto.MilestoneSaveRequest{
		Title: "Bad", Description: "x", MilestoneDate: "2010-13-40",
	}, nil)
	assert.ErrorIs(t, err, service.ErrInvalidDate)

	_, _, err = service.SaveMilestone(ctx, db, blob, &dto.MilestoneSaveRequest{Title: "Missing"}, nil)
	assert.ErrorIs(t, err, service.ErrIncomplete)
}

func TestTimelineAndStats(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()

	var ids []uint
	for _, date := range []string{"2015-06-01", "2009-03-02", "2015-01-20"} {
		m, _, err := service.SaveMilestone(ctx, db, blob, &dto.MilestoneSaveRequest{
			Title: "M " + date, Description: "d", MilestoneDate: date,
		}, nil)
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}

	msg, err := service.BulkAction(ctx, db, blob, "feature", ids[:2])
	require.NoError(t, err)
	assert.Equal(t, "2 milestones featured successfully!", msg)

	rows, err := service.Timeline(ctx, db, false)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 2009, rows[0].MilestoneYear)

	featured, err := service.Timeline(ctx, db, true)
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	stats, err := service.CountMilestones(ctx, db, time.Date(2015, 12, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.Featured)
	assert.EqualValues(t, 2, stats.ThisYear)
	assert.Equal(t, []int{2015, 2009}, stats.AvailableYears)
	assert.Equal(t, 6, stats.YearsSpan)

	_, err = service.BulkAction(ctx, db, blob, "archive", ids)
	assert.ErrorIs(t, err, service.ErrInvalidBulk)
}

func TestBulkAction(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()

	a := newMilestone(t, db, blob, "a", true)
	b := newMilestone(t, db, blob, "b", true)
	c := newMilestone(t, db, blob, "c", false)
	ids := []uint{a.ID, b.ID, c.ID}
	onDisk := func(rel string) bool {
		_, err := os.Stat(filepath.Join(blob.Root, filepath.FromSlash(rel)))
		return err == nil
	}
	require.True(t, onDisk(a.Image))
	require.True(t, onDisk(b.Image))

	msg, err := service.BulkAction(ctx, db, blob, "feature", ids)
	require.NoError(t, err)
	assert.Equal(t, "3 milestones featured successfully!", msg)

	msg, err = service.BulkAction(ctx, db, blob, "unfeature", ids[:1])
	require.NoError(t, err)
	assert.Equal(t, "1 milestones unfeatured successfully!", msg)
	featured, err := service.Timeline(ctx, db, true)
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	for _, action := range []string{"archive", "activate", ""} {
		_, err = service.BulkAction(ctx, db, blob, action, ids)
		assert.ErrorIs(t, err, service.ErrInvalidBulk, action)
	}

	_, err = service.BulkAction(ctx, db, blob, "delete", nil)
	assert.ErrorIs(t, err, service.ErrNoneSelected)

	msg, err = service.BulkAction(ctx, db, blob, "delete", []uint{a.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, "2 milestones deleted successfully!", msg)
	assert.False(t, onDisk(a.Image))
	assert.True(t, onDisk(b.Image))

	title, err := service.DeleteMilestone(ctx, db, blob, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", title)
	assert.False(t, onDisk(b.Image))

	var left int64
	require.NoError(t, db.Model(&model.CompanyMilestoneModel{}).Count(&left).Error)
	assert.Zero(t, left)
}

func TestToggleFeatured(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	m := newMilestone(t, db, blob, "Founded", false)

	featured, err := service.ToggleFeatured(ctx, db, m.ID)
	require.NoError(t, err)
	assert.True(t, featured)

	featured, err = service.ToggleFeatured(ctx, db, m.ID)
	require.NoError(t, err)
	assert.False(t, featured)

	_, err = service.ToggleFeatured(ctx, db, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeletedMessageKeepsQuotes(t *testing.T) {
	assert.Equal(t, `Milestone "ISO "9001"" deleted successfully!`, service.DeletedMessage(`ISO "9001"`))
}
