package service

import (
	"context"
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	articleModel "axflo_backend/internals/features/blog/articles/model"
	jobModel "axflo_backend/internals/features/careers/jobs/model"
	jobService "axflo_backend/internals/features/careers/jobs/service"
	contactModel "axflo_backend/internals/features/contacts/contacts/model"
	contentModel "axflo_backend/internals/features/home/contents/model"
	contentService "axflo_backend/internals/features/home/contents/service"
	newsletterModel "axflo_backend/internals/features/newsletters/newsletters/model"
	achievementModel "axflo_backend/internals/features/showcase/achievements/model"
	milestoneModel "axflo_backend/internals/features/showcase/milestones/model"
	portfolioModel "axflo_backend/internals/features/showcase/portfolio/model"
	userModel "axflo_backend/internals/features/users/user/model"
	helpers "axflo_backend/internals/helpers"
)

const (
	homeJobLimit           = 6
	featuredAchievementMax = 3
	featuredMilestoneMax   = 5
	dashboardRecent        = 5

	// CountriesServed is shown on the achievements page.
	CountriesServed = 15
)

var ErrPageNotFound = fiber.NewError(fiber.StatusNotFound, "Page not found.")

// StaticPages maps every marketing route to its title. The keys double as
// the page_name of editable content blocks and the slug of service
// descriptions.
var StaticPages = map[string]string{
	"about":                               "About Us",
	"services":                            "Our Services",
	"csr":                                 "Corporate Social Responsibility",
	"qshe":                                "QSHE",
	"testing":                             "Testing",
	"construction-services":               "Construction Services",
	"engineering-consultancy":             "Engineering Consultancy",
	"environmental-services":              "Environmental Services",
	"environmental-technologies":          "Environmental Technologies",
	"equipment-hire-services":             "Equipment Hire Services",
	"incident-management":                 "Incident Management",
	"installation-services":               "Installation Services",
	"marine-support-services":             "Marine Support Services",
	"offshore-accommodation-services":     "Offshore Accommodation Services",
	"offshore-marine-services":            "Offshore Marine Services",
	"oil-spill-response":                  "Oil Spill Response",
	"plant-operation-facility-management": "Plant Operation & Facility Management",
	"preparedness-planning":               "Preparedness Planning",
	"procurement-logistics":               "Procurement & Logistics",
	"project-management":                  "Project Management",
	"renewable-energy":                    "Renewable Energy",
	"testing-commissioning":               "Testing & Commissioning",
	"training-programs":                   "Training Programs",
	"waste-recycling":                     "Waste Recycling",
	"water-wastewater-treatment":          "Water & Wastewater Treatment",
}

// HomeJobs returns the newest active postings for the homepage.
func HomeJobs(ctx context.Context, db *gorm.DB) ([]jobModel.JobPostingModel, error) {
	return jobService.ActivePostings(ctx, db, homeJobLimit)
}

// StaticPage loads what a marketing page needs: its content blocks and,
// when one is active under the same slug, the service description.
func StaticPage(ctx context.Context, db *gorm.DB, page string) (*contentModel.ServiceDescriptionModel, []contentModel.PageContentModel, error) {
	if _, ok := StaticPages[page]; !ok {
		return nil, nil, ErrPageNotFound
	}
	sections, err := contentService.PageSections(ctx, db, page)
	if err != nil {
		return nil, nil, err
	}
	svc, err := contentService.ServiceBySlug(ctx, db, page)
	if errors.Is(err, contentService.ErrServiceNotFound) {
		return nil, sections, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return svc, sections, nil
}

/* ======================= ACHIEVEMENTS PAGE ======================= */

type AchievementsPage struct {
	Featured           []achievementModel.AchievementModel
	Achievements       []achievementModel.AchievementModel
	Portfolio          []portfolioModel.ProjectPortfolioModel
	Milestones         []milestoneModel.CompanyMilestoneModel
	FeaturedMilestones []milestoneModel.CompanyMilestoneModel
	CompletedProjects  int
	// EnvironmentalImpact sums co2_reduced over achievements and
	// co2_prevented over portfolio entries.
	EnvironmentalImpact int64
}

func LoadAchievementsPage(ctx context.Context, db *gorm.DB) (*AchievementsPage, error) {
	var out AchievementsPage
	db = db.WithContext(ctx)

	active := func() *gorm.DB {
		return db.Preload("Category").Where("status = ?", achievementModel.StatusActive)
	}
	if err := active().Where("featured = ?", true).
		Order("display_order ASC").Order("achievement_date DESC").
		Limit(featuredAchievementMax).
		Find(&out.Featured).Error; err != nil {
		return nil, err
	}
	if err := active().
		Order("achievement_date DESC").Order("display_order ASC").
		Find(&out.Achievements).Error; err != nil {
		return nil, err
	}
	if err := db.Where("status IN ?", []string{portfolioModel.StatusFeatured, portfolioModel.StatusStandard}).
		Order("completion_date DESC").Order("display_order ASC").
		Find(&out.Portfolio).Error; err != nil {
		return nil, err
	}
	if err := db.Order("milestone_date DESC").Order("display_order ASC").
		Find(&out.Milestones).Error; err != nil {
		return nil, err
	}

	for _, m := range out.Milestones {
		if m.Featured && len(out.FeaturedMilestones) < featuredMilestoneMax {
			out.FeaturedMilestones = append(out.FeaturedMilestones, m)
		}
	}
	out.CompletedProjects = len(out.Portfolio)
	for _, a := range out.Achievements {
		out.EnvironmentalImpact += wholeUnits(helpers.FloatFromMap(a.ImpactMetrics, "co2_reduced"))
	}
	for _, p := range out.Portfolio {
		out.EnvironmentalImpact += wholeUnits(helpers.FloatFromMap(p.EnvironmentalImpact, "co2_prevented"))
	}
	return &out, nil
}

func wholeUnits(v float64) int64 {
	return int64(math.Trunc(v))
}

/* ======================= DASHBOARD ======================= */

type Dashboard struct {
	TotalUsers        int64
	StaffUsers        int64
	Superusers        int64
	TotalContacts     int64
	UnreadContacts    int64
	RecentContacts    []contactModel.ContactSubmissionModel
	TotalSubscribers  int64
	ActiveSubscribers int64
	TotalNewsletters  int64
	RecentSubscribers []newsletterModel.SubscriberModel
	TotalArticles     int64
	PublishedArticles int64
	RecentArticles    []articleModel.NewsArticleModel
	TotalJobs         int64
}

type counter struct {
	model interface{}
	where []interface{}
	dst   *int64
}

func LoadDashboard(ctx context.Context, db *gorm.DB) (*Dashboard, error) {
	var d Dashboard
	db = db.WithContext(ctx)

	counts := []counter{
		{&userModel.UserModel{}, nil, &d.TotalUsers},
		{&userModel.UserModel{}, []interface{}{"is_staff = ?", true}, &d.StaffUsers},
		{&userModel.UserModel{}, []interface{}{"is_superuser = ?", true}, &d.Superusers},
		{&contactModel.ContactSubmissionModel{}, nil, &d.TotalContacts},
		{&contactModel.ContactSubmissionModel{}, []interface{}{"read = ?", false}, &d.UnreadContacts},
		{&newsletterModel.SubscriberModel{}, nil, &d.TotalSubscribers},
		{&newsletterModel.SubscriberModel{}, []interface{}{"active_status = ?", true}, &d.ActiveSubscribers},
		{&newsletterModel.NewsletterModel{}, nil, &d.TotalNewsletters},
		{&articleModel.NewsArticleModel{}, nil, &d.TotalArticles},
		{&articleModel.NewsArticleModel{}, []interface{}{"status = ?", articleModel.StatusPublished}, &d.PublishedArticles},
		{&jobModel.JobPostingModel{}, nil, &d.TotalJobs},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if len(c.where) > 0 {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Preload("InquiryType").Order("date DESC").Limit(dashboardRecent).Find(&d.RecentContacts).Error; err != nil {
		return nil, err
	}
	if err := db.Order("subscription_date DESC").Limit(dashboardRecent).Find(&d.RecentSubscribers).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Category").Preload("Author").Order("created_at DESC").Limit(dashboardRecent).Find(&d.RecentArticles).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
