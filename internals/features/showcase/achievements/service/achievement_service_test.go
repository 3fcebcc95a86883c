package service_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"axflo_backend/internals/features/showcase/achievements/dto"
	"axflo_backend/internals/features/showcase/achievements/model"
	"axflo_backend/internals/features/showcase/achievements/service"
	"axflo_backend/internals/helpers/storage"
	"axflo_backend/internals/testutil"
)

func newCategory(t *testing.T, db *gorm.DB, name string) *model.AchievementCategoryModel {
	t.Helper()
	row, created, err := service.SaveCategory(context.Background(), db, &dto.CategorySaveRequest{Name: name})
	require.NoError(t, err)
	require.True(t, created)
	return row
}

func saveRequest(catID uint, title string) *dto.AchievementSaveRequest {
	return &dto.AchievementSaveRequest{
		Title:           title,
		AchievementType: model.TypeAward,
		CategoryID:      strconv.Itoa(int(catID)),
		AchievementDate: "2023-05-17",
		Description:     "awarded for safety",
		ImpactMetrics:   `{"barrels_recovered": 1200}`,
	}
}

func newAchievement(t *testing.T, db *gorm.DB, blob storage.BlobService, catID uint, title string) *model.AchievementModel {
	t.Helper()
	row, created, err := service.SaveAchievement(context.Background(), db, blob, saveRequest(catID, title), nil)
	require.NoError(t, err)
	require.True(t, created)
	return row
}

func TestSaveAchievement(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	cat := newCategory(t, db, "Safety")

	a := newAchievement(t, db, blob, cat.ID, "Zero LTI Year")
	assert.Equal(t, model.StatusActive, a.Status)
	assert.EqualValues(t, 1200, a.ImpactMetrics["barrels_recovered"])

	req := saveRequest(cat.ID, "Zero LTI Year 2023")
	req.AchievementID = strconv.Itoa(int(a.ID))
	updated, created, err := service.SaveAchievement(ctx, db, blob, req, nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, a.ID, updated.ID)

	bad := saveRequest(cat.ID, "Broken")
	bad.ImpactMetrics = "{not json"
	_, _, err = service.SaveAchievement(ctx, db, blob, bad, nil)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Invalid JSON format for impact metrics", fe.Message)

	_, _, err = service.SaveAchievement(ctx, db, blob, saveRequest(999, "No category"), nil)
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)

	badType := saveRequest(cat.ID, "Typo")
	badType.AchievementType = "TROPHY"
	_, _, err = service.SaveAchievement(ctx, db, blob, badType, nil)
	assert.ErrorIs(t, err, service.ErrInvalidType)

	badDate := saveRequest(cat.ID, "Date")
	badDate.AchievementDate = "17/05/2023"
	_, _, err = service.SaveAchievement(ctx, db, blob, badDate, nil)
	assert.ErrorIs(t, err, service.ErrInvalidDate)

	var n int64
	require.NoError(t, db.Model(&model.AchievementModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestBulkAction(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	cat := newCategory(t, db, "Awards")

	ids := []uint{
		newAchievement(t, db, blob, cat.ID, "One").ID,
		newAchievement(t, db, blob, cat.ID, "Two").ID,
		newAchievement(t, db, blob, cat.ID, "Three").ID,
	}

	msg, err := service.BulkAction(ctx, db, blob, "archive", ids)
	require.NoError(t, err)
	assert.Equal(t, "3 achievements archived successfully!", msg)

	var archived int64
	require.NoError(t, db.Model(&model.AchievementModel{}).Where("status = ?", model.StatusArchived).Count(&archived).Error)
	assert.EqualValues(t, 3, archived)

	public, err := service.PublicAchievements(ctx, db, false)
	require.NoError(t, err)
	assert.Empty(t, public)

	msg, err = service.BulkAction(ctx, db, blob, "feature", ids[:2])
	require.NoError(t, err)
	assert.Equal(t, "2 achievements featured successfully!", msg)

	_, err = service.BulkAction(ctx, db, blob, "publish", ids)
	assert.ErrorIs(t, err, service.ErrInvalidBulk)

	_, err = service.BulkAction(ctx, db, blob, "delete", nil)
	assert.ErrorIs(t, err, service.ErrNoneSelected)

	msg, err = service.BulkAction(ctx, db, blob, "delete", ids)
	require.NoError(t, err)
	assert.Equal(t, "3 achievements deleted successfully!", msg)
}

func TestToggleFeatured(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	cat := newCategory(t, db, "Awards")
	a := newAchievement(t, db, blob, cat.ID, "One")

	featured, err := service.ToggleFeatured(ctx, db, a.ID)
	require.NoError(t, err)
	assert.True(t, featured)

	featured, err = service.ToggleFeatured(ctx, db, a.ID)
	require.NoError(t, err)
	assert.False(t, featured)

	_, err = service.ToggleFeatured(ctx, db, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteCategoryRefusedWhileInUse(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	used := newCategory(t, db, "Used")
	free := newCategory(t, db, "Free")
	assert.Equal(t, dto.FormDefaultColor, free.Color)
	a := newAchievement(t, db, blob, used.ID, "One")

	_, err := service.DeleteCategory(ctx, db, used.ID)
	assert.ErrorIs(t, err, service.ErrCategoryInUse)

	name, err := service.DeleteCategory(ctx, db, free.ID)
	require.NoError(t, err)
	assert.Equal(t, "Free", name)

	title, err := service.DeleteAchievement(ctx, db, blob, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "One", title)

	_, err = service.DeleteCategory(ctx, db, used.ID)
	require.NoError(t, err)
	_, err = service.DeleteCategory(ctx, db, used.ID)
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)
}

func TestDeletedMessagesKeepQuotes(t *testing.T) {
	assert.Equal(t, `Achievement "Best "Safety" Award" deleted successfully!`, service.DeletedMessage(`Best "Safety" Award`))
	assert.Equal(t, `Category "R&D" deleted successfully!`, service.CategoryDeletedMessage("R&D"))
}
