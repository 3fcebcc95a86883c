package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	articleDto "axflo_backend/internals/features/blog/articles/dto"
	jobDto "axflo_backend/internals/features/careers/jobs/dto"
	contactDto "axflo_backend/internals/features/contacts/contacts/dto"
	contentDto "axflo_backend/internals/features/home/contents/dto"
	"axflo_backend/internals/features/home/pages/dto"
	"axflo_backend/internals/features/home/pages/service"
	newsletterDto "axflo_backend/internals/features/newsletters/newsletters/dto"
	achievementDto "axflo_backend/internals/features/showcase/achievements/dto"
	milestoneDto "axflo_backend/internals/features/showcase/milestones/dto"
	portfolioDto "axflo_backend/internals/features/showcase/portfolio/dto"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/helpers/storage"
)

const animationStep = 0.1

type PageController struct {
	DB   *gorm.DB
	Blob storage.BlobService
}

func NewPageController(db *gorm.DB, blob storage.BlobService) *PageController {
	return &PageController{DB: db, Blob: blob}
}

func (pc *PageController) imageURL(rel string) interface{} {
	return storage.URLOrNil(pc.Blob, rel)
}

// GET /
func (pc *PageController) Home(c *fiber.Ctx) error {
	rows, err := service.HomeJobs(c.UserContext(), pc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	out := dto.HomeDTO{JobPostings: make([]dto.HomeJobDTO, 0, len(rows)), HasJobs: len(rows) > 0}
	for i := range rows {
		out.JobPostings = append(out.JobPostings, dto.HomeJobDTO{
			JobPostingDTO:  jobDto.FromJobPosting(&rows[i]),
			AnimationDelay: float64(i) * animationStep,
		})
	}
	return helpers.JsonOK(c, "ok", out)
}

// Static returns the handler for one marketing page.
func (pc *PageController) Static(page string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc, sections, err := service.StaticPage(c.UserContext(), pc.DB, page)
		if err != nil {
			return helpers.FromFiberError(c, err)
		}
		out := dto.StaticPageDTO{
			Page:     page,
			Title:    service.StaticPages[page],
			Sections: contentDto.SectionMap(sections),
		}
		if svc != nil {
			d := contentDto.FromService(svc, pc.imageURL)
			out.Service = &d
		}
		return helpers.JsonOK(c, "ok", out)
	}
}

// GET /achievements
func (pc *PageController) Achievements(c *fiber.Ctx) error {
	p, err := service.LoadAchievementsPage(c.UserContext(), pc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", dto.AchievementsPageDTO{
		FeaturedAchievements: achievementDto.FromPublicAchievements(p.Featured, pc.imageURL),
		Achievements:         achievementDto.FromPublicAchievements(p.Achievements, pc.imageURL),
		PortfolioProjects:    portfolioDto.FromPublicPortfolios(p.Portfolio, pc.imageURL),
		Milestones:           milestoneDto.FromMilestones(p.Milestones, pc.imageURL),
		FeaturedMilestones:   milestoneDto.FromMilestones(p.FeaturedMilestones, pc.imageURL),
		TotalAchievements:    len(p.Achievements),
		CompletedProjects:    p.CompletedProjects,
		EnvironmentalImpact:  p.EnvironmentalImpact,
		CountriesServed:      service.CountriesServed,
	})
}

// GET /admindashboard
func (pc *PageController) Dashboard(c *fiber.Ctx) error {
	d, err := service.LoadDashboard(c.UserContext(), pc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", dto.DashboardDTO{
		TotalUsers:        d.TotalUsers,
		StaffUsers:        d.StaffUsers,
		Superusers:        d.Superusers,
		TotalContacts:     d.TotalContacts,
		UnreadContacts:    d.UnreadContacts,
		RecentContacts:    contactDto.FromSubmissions(d.RecentContacts),
		TotalSubscribers:  d.TotalSubscribers,
		ActiveSubscribers: d.ActiveSubscribers,
		TotalNewsletters:  d.TotalNewsletters,
		RecentSubscribers: newsletterDto.FromSubscribers(d.RecentSubscribers),
		TotalArticles:     d.TotalArticles,
		PublishedArticles: d.PublishedArticles,
		RecentArticles:    articleDto.FromArticles(d.RecentArticles, pc.Blob.PublicURL),
		TotalJobs:         d.TotalJobs,
	})
}
