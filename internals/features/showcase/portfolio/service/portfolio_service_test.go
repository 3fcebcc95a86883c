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

	"axflo_backend/internals/features/showcase/portfolio/dto"
	"axflo_backend/internals/features/showcase/portfolio/model"
	"axflo_backend/internals/features/showcase/portfolio/service"
	"axflo_backend/internals/helpers/storage"
	"axflo_backend/internals/testutil"
)

func portfolioRequest(title string) *dto.PortfolioSaveRequest {
	return &dto.PortfolioSaveRequest{
		Title:               title,
		Client:              "Delta Oil",
		Location:            "Bonny Island",
		ProjectType:         "OIL_SPILL",
		BriefDescription:    "Shoreline recovery",
		DetailedDescription: "Full shoreline recovery programme",
		StartDate:           "2022-01-10",
		CompletionDate:      "2022-09-30",
		ProjectValue:        "2500000",
		EnvironmentalImpact: `{"hectares_restored": 40}`,
		Tags:                "oil, shoreline ,",
	}
}

func create(t *testing.T, db *gorm.DB, blob storage.BlobService, title string) *model.ProjectPortfolioModel {
	t.Helper()
	p, created, err := service.SavePortfolio(context.Background(), db, blob, portfolioRequest(title), service.Uploads{})
	require.NoError(t, err)
	require.True(t, created)
	return p
}

func TestSavePortfolio(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()

	first := create(t, db, blob, "Bonny Cleanup")
	assert.Equal(t, "bonny-cleanup", first.Slug)
	assert.Equal(t, model.StatusStandard, first.Status)
	assert.Equal(t, []string{"oil", "shoreline"}, first.TagsList())

	second := create(t, db, blob, "Bonny Cleanup")
	assert.Equal(t, "bonny-cleanup-2", second.Slug)

	req := portfolioRequest("Renamed Project")
	req.ProjectID = strconv.Itoa(int(first.ID))
	updated, created, err := service.SavePortfolio(ctx, db, blob, req, service.Uploads{})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "bonny-cleanup", updated.Slug)
	assert.Equal(t, "Renamed Project", updated.Title)
}

func TestInvalidJSONWritesNothing(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()

	req := portfolioRequest("Broken")
	req.EnvironmentalImpact = "[1, 2"
	_, _, err := service.SavePortfolio(ctx, db, blob, req, service.Uploads{})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
	assert.Equal(t, "Invalid JSON format for environmental impact", fe.Message)

	req = portfolioRequest("Broken")
	req.KeyStatistics = "not json"
	_, _, err = service.SavePortfolio(ctx, db, blob, req, service.Uploads{})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Invalid JSON format for key statistics", fe.Message)

	req = portfolioRequest("Broken")
	req.ProjectValue = "lots"
	_, _, err = service.SavePortfolio(ctx, db, blob, req, service.Uploads{})
	assert.ErrorIs(t, err, service.ErrInvalidNumber)

	req = portfolioRequest("Broken")
	req.ProjectType = "MINING"
	_, _, err = service.SavePortfolio(ctx, db, blob, req, service.Uploads{})
	assert.ErrorIs(t, err, service.ErrInvalidType)

	var n int64
	require.NoError(t, db.Model(&model.ProjectPortfolioModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPublicVisibilityAndViews(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	live := create(t, db, blob, "Live")
	hidden := create(t, db, blob, "Hidden")

	msg, err := service.BulkAction(ctx, db, blob, "archive", []uint{hidden.ID})
	require.NoError(t, err)
	assert.Equal(t, "1 projects archived successfully!", msg)

	_, err = service.PortfolioBySlug(ctx, db, hidden.Slug)
	assert.ErrorIs(t, err, service.ErrPublicNotFound)

	got, err := service.PortfolioBySlug(ctx, db, live.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
	got, err = service.PortfolioBySlug(ctx, db, live.Slug)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewCount)

	featured, err := service.ToggleFeatured(ctx, db, live.ID)
	require.NoError(t, err)
	assert.True(t, featured)
	home, err := service.HomepagePortfolios(ctx, db)
	require.NoError(t, err)
	require.Len(t, home, 1)
	assert.Equal(t, live.ID, home[0].ID)

	_, err = service.BulkAction(ctx, db, blob, "activate", []uint{hidden.ID})
	require.NoError(t, err)
	restored, err := service.GetPortfolio(ctx, db, hidden.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusStandard, restored.Status)

	_, err = service.BulkAction(ctx, db, blob, "archive", nil)
	assert.ErrorIs(t, err, service.ErrNoneSelected)

	title, err := service.DeletePortfolio(ctx, db, blob, live.ID)
	require.NoError(t, err)
	assert.Equal(t, "Live", title)
	_, err = service.GetPortfolio(ctx, db, live.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestBulkAction(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()

	ids := []uint{
		create(t, db, blob, "One").ID,
		create(t, db, blob, "Two").ID,
		create(t, db, blob, "Three").ID,
	}

	msg, err := service.BulkAction(ctx, db, blob, "archive", ids[:2])
	require.NoError(t, err)
	assert.Equal(t, "2 projects archived successfully!", msg)

	var archived int64
	require.NoError(t, db.Model(&model.ProjectPortfolioModel{}).Where("status = ?", model.StatusArchived).Count(&archived).Error)
	assert.EqualValues(t, 2, archived)

	msg, err = service.BulkAction(ctx, db, blob, "activate", ids[:2])
	require.NoError(t, err)
	assert.Equal(t, "2 projects activated successfully!", msg)
	rows, err := service.PortfoliosByStatus(ctx, db, model.StatusStandard)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	msg, err = service.BulkAction(ctx, db, blob, "feature", ids)
	require.NoError(t, err)
	assert.Equal(t, "3 projects featured successfully!", msg)
	stats, err := service.CountPortfolios(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Featured)

	_, err = service.BulkAction(ctx, db, blob, "unfeature", ids[:1])
	require.NoError(t, err)
	stats, err = service.CountPortfolios(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Featured)

	_, err = service.BulkAction(ctx, db, blob, "publish", ids)
	assert.ErrorIs(t, err, service.ErrInvalidBulk)

	_, err = service.BulkAction(ctx, db, blob, "delete", []uint{})
	assert.ErrorIs(t, err, service.ErrNoneSelected)

	msg, err = service.BulkAction(ctx, db, blob, "delete", ids[1:])
	require.NoError(t, err)
	assert.Equal(t, "2 projects deleted successfully!", msg)

	var left int64
	require.NoError(t, db.Model(&model.ProjectPortfolioModel{}).Count(&left).Error)
	assert.EqualValues(t, 1, left)
}

func TestToggleFeatured(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	p := create(t, db, blob, "One")

	featured, err := service.ToggleFeatured(ctx, db, p.ID)
	require.NoError(t, err)
	assert.True(t, featured)

	featured, err = service.ToggleFeatured(ctx, db, p.ID)
	require.NoError(t, err)
	assert.False(t, featured)

	_, err = service.ToggleFeatured(ctx, db, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteRemovesImages(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()

	upload := func(name string) service.Uploads {
		return service.Uploads{
			Featured: testutil.FileHeader(t, name+".png", testutil.PNG(t, 8, 8)),
			Before:   testutil.FileHeader(t, name+"-before.png", testutil.PNG(t, 8, 8)),
			After:    testutil.FileHeader(t, name+"-after.png", testutil.PNG(t, 8, 8)),
		}
	}
	onDisk := func(rel string) bool {
		_, err := os.Stat(filepath.Join(blob.Root, filepath.FromSlash(rel)))
		return err == nil
	}

	single, _, err := service.SavePortfolio(ctx, db, blob, portfolioRequest("Single"), upload("single"))
	require.NoError(t, err)
	bulk, _, err := service.SavePortfolio(ctx, db, blob, portfolioRequest("Bulk"), upload("bulk"))
	require.NoError(t, err)

	paths := []string{single.FeaturedImage, single.BeforeImage, single.AfterImage, bulk.FeaturedImage, bulk.BeforeImage, bulk.AfterImage}
	for _, rel := range paths {
		require.NotEmpty(t, rel)
		require.True(t, onDisk(rel), rel)
	}

	title, err := service.DeletePortfolio(ctx, db, blob, single.ID)
	require.NoError(t, err)
	assert.Equal(t, "Single", title)
	for _, rel := range paths[:3] {
		assert.False(t, onDisk(rel), rel)
	}
	for _, rel := range paths[3:] {
		assert.True(t, onDisk(rel), rel)
	}

	_, err = service.BulkAction(ctx, db, blob, "delete", []uint{bulk.ID})
	require.NoError(t, err)
	for _, rel := range paths[3:] {
		assert.False(t, onDisk(rel), rel)
	}

	_, err = service.DeletePortfolio(ctx, db, blob, single.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeletedMessageKeepsQuotes(t *testing.T) {
	assert.Equal(t, `Project "Bonny "Phase 2"" deleted successfully!`, service.DeletedMessage(`Bonny "Phase 2"`))
}
