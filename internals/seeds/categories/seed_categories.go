package categories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	blogModel "axflo_backend/internals/features/blog/articles/model"
	jobModel "axflo_backend/internals/features/careers/jobs/model"
	contactModel "axflo_backend/internals/features/contacts/contacts/model"
	newsletterModel "axflo_backend/internals/features/newsletters/newsletters/model"
	achievementModel "axflo_backend/internals/features/showcase/achievements/model"
	helpers "axflo_backend/internals/helpers"
)

type CategorySeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// Result counts rows per lookup table.
type Result struct {
	Table   string
	Created int
	Skipped int
}

func readSeeds(filePath string) ([]CategorySeed, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	var rows []CategorySeed
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return rows, nil
}

// firstOrCreate inserts dst unless a row with the same name exists.
func firstOrCreate(db *gorm.DB, dst interface{}, name string, res *Result) error {
	var n int64
	if err := db.Model(dst).Where("name = ?", name).Count(&n).Error; err != nil {
		return fmt.Errorf("%s %q: %w", res.Table, name, err)
	}
	if n > 0 {
		res.Skipped++
		return nil
	}
	if err := db.Create(dst).Error; err != nil {
		return fmt.Errorf("%s %q: %w", res.Table, name, err)
	}
	res.Created++
	return nil
}

func SeedInquiryCategories(db *gorm.DB, rows []CategorySeed) (Result, error) {
	res := Result{Table: "inquiry categories"}
	for _, r := range rows {
		m := contactModel.InquiryCategoryModel{Name: r.Name, Description: r.Description}
		if err := firstOrCreate(db, &m, r.Name, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func SeedBlogCategories(db *gorm.DB, rows []CategorySeed) (Result, error) {
	res := Result{Table: "blog categories"}
	for _, r := range rows {
		slug := r.Slug
		if slug == "" {
			slug = helpers.Slugify(r.Name, 120)
		}
		m := blogModel.BlogCategoryModel{Name: r.Name, Description: r.Description, Slug: slug}
		if err := firstOrCreate(db, &m, r.Name, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func SeedJobCategories(db *gorm.DB, rows []CategorySeed) (Result, error) {
	res := Result{Table: "job categories"}
	for _, r := range rows {
		m := jobModel.JobCategoryModel{Name: r.Name, Description: r.Description}
		if err := firstOrCreate(db, &m, r.Name, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func SeedSubscriptionCategories(db *gorm.DB, rows []CategorySeed) (Result, error) {
	res := Result{Table: "subscription categories"}
	for _, r := range rows {
		m := newsletterModel.SubscriptionCategoryModel{Name: r.Name, Description: r.Description}
		if err := firstOrCreate(db, &m, r.Name, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func SeedAchievementCategories(db *gorm.DB, rows []CategorySeed) (Result, error) {
	res := Result{Table: "achievement categories"}
	for _, r := range rows {
		m := achievementModel.AchievementCategoryModel{Name: r.Name, Description: r.Description, Icon: r.Icon, Color: r.Color}
		if err := firstOrCreate(db, &m, r.Name, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// SeedCategoriesFromJSON loads every data_*.json lookup file under dir.
func SeedCategoriesFromJSON(db *gorm.DB, dir string) error {
	steps := []struct {
		file string
		fn   func(*gorm.DB, []CategorySeed) (Result, error)
	}{
		{"data_inquiry_categories.json", SeedInquiryCategories},
		{"data_blog_categories.json", SeedBlogCategories},
		{"data_job_categories.json", SeedJobCategories},
		{"data_subscription_categories.json", SeedSubscriptionCategories},
		{"data_achievement_categories.json", SeedAchievementCategories},
	}

	log := configs.Log()
	for _, s := range steps {
		rows, err := readSeeds(filepath.Join(dir, s.file))
		if err != nil {
			return err
		}
		res, err := s.fn(db, rows)
		if err != nil {
			return err
		}
		log.Info("seeded categories",
			zap.String("table", res.Table),
			zap.Int("created", res.Created),
			zap.Int("existing", res.Skipped),
		)
	}
	return nil
}
