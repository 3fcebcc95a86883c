package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axflo_backend/internals/features/home/contents/dto"
	"axflo_backend/internals/features/home/contents/model"
	"axflo_backend/internals/features/home/contents/service"
	userModel "axflo_backend/internals/features/users/user/model"
	"axflo_backend/internals/testutil"
)

func TestUpsertPageContent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	editor := userModel.UserModel{Username: "editor", Password: "x", IsStaff: true, IsActive: true}
	require.NoError(t, db.Create(&editor).Error)

	req := &dto.PageContentRequest{PageName: " About ", Section: "Hero", Content: "Who we are"}
	req.Normalize()
	row, created, err := service.UpsertPageContent(ctx, db, editor.ID, req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "about", row.PageName)
	assert.Equal(t, "hero", row.Section)

	req = &dto.PageContentRequest{PageName: "ABOUT", Section: "hero", Content: "Who we are today"}
	req.Normalize()
	again, created, err := service.UpsertPageContent(ctx, db, uuid.Nil, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, row.ID, again.ID)
	assert.Equal(t, "Who we are today", again.Content)

	var n int64
	require.NoError(t, db.Model(&model.PageContentModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	req = &dto.PageContentRequest{PageName: "qshe", Section: "intro", Content: "Safety first"}
	req.Normalize()
	_, _, err = service.UpsertPageContent(ctx, db, editor.ID, req)
	require.NoError(t, err)

	names, err := service.PageNames(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"about", "qshe"}, names)

	sections, err := service.PageSections(ctx, db, "qshe")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Safety first", sections[0].Content)

	deleted, err := service.DeletePageContent(ctx, db, row.ID)
	require.NoError(t, err)
	assert.Equal(t, "about", deleted.PageName)
	_, err = service.DeletePageContent(ctx, db, row.ID)
	assert.ErrorIs(t, err, service.ErrContentNotFound)
}

func TestCompanyInfoIsSingleton(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	_, err := service.CompanyInfo(ctx, db)
	assert.ErrorIs(t, err, service.ErrCompanyInfoNone)
	_, err = service.UpdateCompanyInfo(ctx, db, &dto.CompanyInfoRequest{AboutText: "x"})
	assert.ErrorIs(t, err, service.ErrCompanyInfoNone)

	year := 2009
	info, err := service.CreateCompanyInfo(ctx, db, &dto.CompanyInfoRequest{
		AboutText: "About", Mission: "Mission", Vision: "Vision", Achievements: "Many", FoundedYear: &year,
	})
	require.NoError(t, err)
	require.NotNil(t, info.FoundedYear)
	assert.Equal(t, 2009, *info.FoundedYear)

	_, err = service.CreateCompanyInfo(ctx, db, &dto.CompanyInfoRequest{AboutText: "Second", Mission: "m", Vision: "v", Achievements: "a"})
	assert.ErrorIs(t, err, service.ErrCompanyInfoExist)

	updated, err := service.UpdateCompanyInfo(ctx, db, &dto.CompanyInfoRequest{AboutText: "About us", Mission: "m", Vision: "v", Achievements: "a"})
	require.NoError(t, err)
	assert.Equal(t, info.ID, updated.ID)
	assert.Equal(t, "About us", updated.AboutText)

	var n int64
	require.NoError(t, db.Model(&model.CompanyInfoModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
