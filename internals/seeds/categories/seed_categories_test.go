package categories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blogModel "axflo_backend/internals/features/blog/articles/model"
	jobModel "axflo_backend/internals/features/careers/jobs/model"
	contactModel "axflo_backend/internals/features/contacts/contacts/model"
	newsletterModel "axflo_backend/internals/features/newsletters/newsletters/model"
	achievementModel "axflo_backend/internals/features/showcase/achievements/model"
	"axflo_backend/internals/seeds/categories"
	"axflo_backend/internals/testutil"
)

func TestSeedCategoriesIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, categories.SeedCategoriesFromJSON(db, "."))

	tables := []interface{}{
		&contactModel.InquiryCategoryModel{},
		&blogModel.BlogCategoryModel{},
		&jobModel.JobCategoryModel{},
		&newsletterModel.SubscriptionCategoryModel{},
		&achievementModel.AchievementCategoryModel{},
	}
	first := make([]int64, len(tables))
	for i, m := range tables {
		require.NoError(t, db.Model(m).Count(&first[i]).Error)
		assert.Positive(t, first[i])
	}

	require.NoError(t, categories.SeedCategoriesFromJSON(db, "."))
	for i, m := range tables {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Equal(t, first[i], n)
	}
}

func TestSeedKeepsExistingRows(t *testing.T) {
	db := testutil.NewDB(t)
	existing := jobModel.JobCategoryModel{Name: "Engineering", Description: "edited by staff"}
	require.NoError(t, db.Create(&existing).Error)

	res, err := categories.SeedJobCategories(db, []categories.CategorySeed{
		{Name: "Engineering", Description: "seed text"},
		{Name: "Finance"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Skipped)

	var got jobModel.JobCategoryModel
	require.NoError(t, db.First(&got, existing.ID).Error)
	assert.Equal(t, "edited by staff", got.Description)

	blog, err := categories.SeedBlogCategories(db, []categories.CategorySeed{{Name: "Company News"}})
	require.NoError(t, err)
	assert.Equal(t, 1, blog.Created)
	var cat blogModel.BlogCategoryModel
	require.NoError(t, db.Where("name = ?", "Company News").First(&cat).Error)
	assert.Equal(t, "company-news", cat.Slug)
}

func TestSeedMissingFile(t *testing.T) {
	db := testutil.NewDB(t)
	assert.Error(t, categories.SeedCategoriesFromJSON(db, t.TempDir()))
}
