package seeds

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	"axflo_backend/internals/seeds/categories"
	users "axflo_backend/internals/seeds/users/auth"
)

// RunAllSeeds is idempotent; rows that already exist by name are kept.
func RunAllSeeds(db *gorm.DB) {
	log := configs.Log()
	dir := configs.GetEnv("SEED_DATA_DIR", "internals/seeds/categories")

	//* Lookup tables
	if err := categories.SeedCategoriesFromJSON(db, dir); err != nil {
		log.Error("❌ category seed failed", zap.Error(err))
	}

	//* Users
	if err := users.SeedSuperuserFromEnv(db); err != nil {
		log.Error("❌ superuser seed failed", zap.Error(err))
	}
}
