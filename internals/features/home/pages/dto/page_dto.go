package dto

import (
	articleDto "axflo_backend/internals/features/blog/articles/dto"
	jobDto "axflo_backend/internals/features/careers/jobs/dto"
	contactDto "axflo_backend/internals/features/contacts/contacts/dto"
	contentDto "axflo_backend/internals/features/home/contents/dto"
	newsletterDto "axflo_backend/internals/features/newsletters/newsletters/dto"
	achievementDto "axflo_backend/internals/features/showcase/achievements/dto"
	milestoneDto "axflo_backend/internals/features/showcase/milestones/dto"
	portfolioDto "axflo_backend/internals/features/showcase/portfolio/dto"
)

// HomeJobDTO is a homepage job card; cards fade in one after another.
type HomeJobDTO struct {
	jobDto.JobPostingDTO
	AnimationDelay float64 `json:"animation_delay"`
}

type HomeDTO struct {
	JobPostings []HomeJobDTO `json:"job_postings"`
	HasJobs     bool         `json:"has_jobs"`
}

// StaticPageDTO backs every marketing page. Service is the matching active
// service description when one exists.
type StaticPageDTO struct {
	Page     string                 `json:"page"`
	Title    string                 `json:"title"`
	Service  *contentDto.ServiceDTO `json:"service"`
	Sections map[string]string      `json:"sections"`
}

type AchievementsPageDTO struct {
	FeaturedAchievements []achievementDto.PublicAchievementDTO `json:"featured_achievements"`
	Achievements         []achievementDto.PublicAchievementDTO `json:"achievements"`
	PortfolioProjects    []portfolioDto.PublicPortfolioDTO     `json:"portfolio_projects"`
	Milestones           []milestoneDto.MilestoneDTO           `json:"milestones"`
	FeaturedMilestones   []milestoneDto.MilestoneDTO           `json:"featured_milestones"`
	TotalAchievements    int                                   `json:"total_achievements"`
	CompletedProjects    int                                   `json:"completed_projects"`
	EnvironmentalImpact  int64                                 `json:"environmental_impact"`
	CountriesServed      int                                   `json:"countries_served"`
}

type DashboardDTO struct {
	TotalUsers        int64                             `json:"total_users"`
	StaffUsers        int64                             `json:"staff_users"`
	Superusers        int64                             `json:"superusers"`
	TotalContacts     int64                             `json:"total_contacts"`
	UnreadContacts    int64                             `json:"unread_contacts"`
	RecentContacts    []contactDto.ContactSubmissionDTO `json:"recent_contacts"`
	TotalSubscribers  int64                             `json:"total_subscribers"`
	ActiveSubscribers int64                             `json:"active_subscribers"`
	TotalNewsletters  int64                             `json:"total_newsletters"`
	RecentSubscribers []newsletterDto.SubscriberDTO     `json:"recent_subscribers"`
	TotalArticles     int64                             `json:"total_articles"`
	PublishedArticles int64                             `json:"published_articles"`
	RecentArticles    []articleDto.ArticleDTO           `json:"recent_articles"`
	TotalJobs         int64                             `json:"total_jobs"`
}
