package database

import (
	"gorm.io/gorm"

	blogModel "axflo_backend/internals/features/blog/articles/model"
	jobModel "axflo_backend/internals/features/careers/jobs/model"
	contactModel "axflo_backend/internals/features/contacts/contacts/model"
	contentModel "axflo_backend/internals/features/home/contents/model"
	newsletterModel "axflo_backend/internals/features/newsletters/newsletters/model"
	projectModel "axflo_backend/internals/features/projects/projects/model"
	achievementModel "axflo_backend/internals/features/showcase/achievements/model"
	milestoneModel "axflo_backend/internals/features/showcase/milestones/model"
	portfolioModel "axflo_backend/internals/features/showcase/portfolio/model"
	authModel "axflo_backend/internals/features/users/auth/model"
	userModel "axflo_backend/internals/features/users/user/model"
)

// Models lists every table owned by the application, parents first.
func Models() []interface{} {
	return []interface{}{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},

		&contactModel.InquiryCategoryModel{},
		&contactModel.ContactSubmissionModel{},
		&contactModel.ContactResponseModel{},

		&jobModel.JobCategoryModel{},
		&jobModel.JobPostingModel{},
		&jobModel.JobApplicationModel{},

		&newsletterModel.SubscriptionCategoryModel{},
		&newsletterModel.SubscriberModel{},
		&newsletterModel.NewsletterModel{},

		&blogModel.BlogCategoryModel{},
		&blogModel.NewsArticleModel{},

		&contentModel.PageContentModel{},
		&contentModel.ServiceDescriptionModel{},
		&contentModel.CompanyInfoModel{},

		&projectModel.ProjectModel{},
		&projectModel.ProjectImageModel{},
		&projectModel.ClientTestimonialModel{},

		&achievementModel.AchievementCategoryModel{},
		&achievementModel.AchievementModel{},
		&portfolioModel.ProjectPortfolioModel{},
		&milestoneModel.CompanyMilestoneModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
