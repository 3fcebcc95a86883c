package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	jobModel "axflo_backend/internals/features/careers/jobs/model"
	"axflo_backend/internals/features/home/pages/service"
	achievementModel "axflo_backend/internals/features/showcase/achievements/model"
	milestoneModel "axflo_backend/internals/features/showcase/milestones/model"
	portfolioModel "axflo_backend/internals/features/showcase/portfolio/model"
	userModel "axflo_backend/internals/features/users/user/model"
	"axflo_backend/internals/testutil"
)

func TestAchievementsPageTotals(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	cat := achievementModel.AchievementCategoryModel{Name: "Environmental"}
	require.NoError(t, db.Create(&cat).Error)
	date := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	achievements := []achievementModel.AchievementModel{
		{Title: "Mangrove replanting", AchievementType: achievementModel.TypeAward, CategoryID: cat.ID, AchievementDate: date,
			Status: achievementModel.StatusActive, Featured: true, ImpactMetrics: datatypes.JSONMap{"co2_reduced": 12.7}},
		{Title: "Old award", AchievementType: achievementModel.TypeAward, CategoryID: cat.ID, AchievementDate: date,
			Status: achievementModel.StatusArchived, ImpactMetrics: datatypes.JSONMap{"co2_reduced": 1000}},
	}
	require.NoError(t, db.Create(&achievements).Error)

	portfolio := []portfolioModel.ProjectPortfolioModel{
		{Title: "Featured", Slug: "featured", ProjectType: "OIL_SPILL", StartDate: date, Status: portfolioModel.StatusFeatured,
			EnvironmentalImpact: datatypes.JSONMap{"co2_prevented": "30.9"}},
		{Title: "Standard", Slug: "standard", ProjectType: "MARINE", StartDate: date, Status: portfolioModel.StatusStandard},
		{Title: "Archived", Slug: "archived", ProjectType: "MARINE", StartDate: date, Status: portfolioModel.StatusArchived,
			EnvironmentalImpact: datatypes.JSONMap{"co2_prevented": 500}},
	}
	require.NoError(t, db.Create(&portfolio).Error)

	for i := 0; i < 7; i++ {
		m := milestoneModel.CompanyMilestoneModel{Title: "M", Description: "d", MilestoneDate: date.AddDate(-i, 0, 0), Featured: true}
		require.NoError(t, db.Create(&m).Error)
	}

	page, err := service.LoadAchievementsPage(ctx, db)
	require.NoError(t, err)
	assert.Len(t, page.Achievements, 1)
	assert.Len(t, page.Featured, 1)
	assert.Equal(t, 2, page.CompletedProjects)
	assert.EqualValues(t, 42, page.EnvironmentalImpact)
	assert.Len(t, page.Milestones, 7)
	assert.Len(t, page.FeaturedMilestones, 5)
	assert.Equal(t, 2023, page.Milestones[0].MilestoneYear)
}

func TestStaticPageRejectsUnknownSlug(t *testing.T) {
	db := testutil.NewDB(t)
	_, _, err := service.StaticPage(context.Background(), db, "pricing")
	assert.ErrorIs(t, err, service.ErrPageNotFound)
}

func TestDashboardCounts(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	users := []userModel.UserModel{
		{Username: "root", Password: "x", IsStaff: true, IsSuperuser: true, IsActive: true},
		{Username: "staff", Password: "x", IsStaff: true, IsActive: true},
		{Username: "plain", Password: "x", IsActive: true},
	}
	require.NoError(t, db.Create(&users).Error)
	postings := []jobModel.JobPostingModel{
		{Title: "A", Status: jobModel.JobStatusActive, EmploymentType: jobModel.EmploymentFullTime},
		{Title: "B", Status: jobModel.JobStatusClosed, EmploymentType: jobModel.EmploymentFullTime},
	}
	require.NoError(t, db.Create(&postings).Error)

	d, err := service.LoadDashboard(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 3, d.TotalUsers)
	assert.EqualValues(t, 2, d.StaffUsers)
	assert.EqualValues(t, 1, d.Superusers)
	assert.EqualValues(t, 2, d.TotalJobs)
	assert.Zero(t, d.TotalContacts)
	assert.Empty(t, d.RecentArticles)

	jobs, err := service.HomeJobs(ctx, db)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "A", jobs[0].Title)
}
