package service_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"axflo_backend/internals/features/blog/articles/dto"
	"axflo_backend/internals/features/blog/articles/model"
	"axflo_backend/internals/features/blog/articles/service"
	userModel "axflo_backend/internals/features/users/user/model"
	"axflo_backend/internals/testutil"
)

func author(t *testing.T, db *gorm.DB) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{Username: "editor", Password: "x", IsStaff: true, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestPublishedAtIsStampedOnce(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	u := author(t, db)

	a, err := service.CreateArticle(ctx, db, blob, u.ID, &dto.ArticleRequest{
		Title: "Spill Response Drill", Content: "<p>Our team ran a drill.</p>",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, a.Status)
	assert.Nil(t, a.PublishedAt)
	assert.Equal(t, "spill-response-drill", a.Slug)
	require.NotNil(t, a.Excerpt)
	assert.Equal(t, "Our team ran a drill.", *a.Excerpt)

	a, err = service.UpdateArticle(ctx, db, blob, a.ID, &dto.ArticleRequest{
		Title: "Spill Response Drill 2024", Content: "body", Status: "published",
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, a.PublishedAt)
	first := *a.PublishedAt
	assert.Equal(t, "spill-response-drill", a.Slug)

	time.Sleep(10 * time.Millisecond)
	a, err = service.UpdateArticle(ctx, db, blob, a.ID, &dto.ArticleRequest{
		Title: "Spill Response Drill 2024", Content: "edited", Status: model.StatusPublished,
	}, nil)
	require.NoError(t, err)

	stored, err := service.GetArticle(ctx, db, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PublishedAt)
	assert.WithinDuration(t, first, *stored.PublishedAt, 5*time.Millisecond)
	assert.Equal(t, "edited", stored.Content)
	require.NotNil(t, stored.Author)
	assert.Equal(t, "editor", stored.Author.Username)

	_, err = service.UpdateArticle(ctx, db, blob, a.ID, &dto.ArticleRequest{Title: "No body"}, nil)
	assert.ErrorIs(t, err, service.ErrIncomplete)
}

func TestArticleDetailVisibility(t *testing.T) {
	db := testutil.NewDB(t)
	blob := testutil.NewBlob(t)
	ctx := context.Background()
	u := author(t, db)
	cat, err := service.CreateCategory(ctx, db, &dto.BlogCategoryRequest{Name: "Company News"})
	require.NoError(t, err)
	catID := strconv.Itoa(int(cat.ID))

	live, err := service.CreateArticle(ctx, db, blob, u.ID, &dto.ArticleRequest{Title: "Live", Content: "c", Status: model.StatusPublished, CategoryID: catID}, nil)
	require.NoError(t, err)
	_, err = service.CreateArticle(ctx, db, blob, u.ID, &dto.ArticleRequest{Title: "Sibling", Content: "c", Status: model.StatusPublished, CategoryID: catID}, nil)
	require.NoError(t, err)
	draft, err := service.CreateArticle(ctx, db, blob, u.ID, &dto.ArticleRequest{Title: "Draft", Content: "c", CategoryID: catID}, nil)
	require.NoError(t, err)

	_, _, _, err = service.ArticleDetail(ctx, db, draft.Slug)
	assert.ErrorIs(t, err, service.ErrNotFound)

	got, related, recent, err := service.ArticleDetail(ctx, db, live.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
	require.Len(t, related, 1)
	assert.Equal(t, "Sibling", related[0].Title)
	assert.Len(t, recent, 1)

	name, err := service.DeleteCategory(ctx, db, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Company News", name)

	stored, err := service.GetArticle(ctx, db, live.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CategoryID)
}

func TestCategorySlugs(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	a, err := service.CreateCategory(ctx, db, &dto.BlogCategoryRequest{Name: "Industry Insights"})
	require.NoError(t, err)
	assert.Equal(t, "industry-insights", a.Slug)

	b, err := service.CreateCategory(ctx, db, &dto.BlogCategoryRequest{Name: "Industry  Insights!"})
	require.NoError(t, err)
	assert.Equal(t, "industry-insights-2", b.Slug)

	b, err = service.UpdateCategory(ctx, db, b.ID, &dto.BlogCategoryRequest{Name: "Events"})
	require.NoError(t, err)
	assert.Equal(t, "events", b.Slug)

	_, err = service.UpdateCategory(ctx, db, 999, &dto.BlogCategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)
}
