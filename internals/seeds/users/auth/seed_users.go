package auth

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	authHelper "axflo_backend/internals/features/users/auth/helper"
	"axflo_backend/internals/features/users/user/model"
)

type SuperuserSeed struct {
	Username string
	Email    string
	Password string
}

// SuperuserFromEnv reads SEED_ADMIN_USERNAME, SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD. ok is false when username or password is unset.
func SuperuserFromEnv() (SuperuserSeed, bool) {
	s := SuperuserSeed{
		Username: strings.TrimSpace(configs.GetEnv("SEED_ADMIN_USERNAME")),
		Email:    strings.TrimSpace(configs.GetEnv("SEED_ADMIN_EMAIL")),
		Password: configs.GetEnv("SEED_ADMIN_PASSWORD"),
	}
	return s, s.Username != "" && s.Password != ""
}

// SeedSuperuser creates the account once. An existing username is left
// untouched, including its password. created reports whether a row was
// inserted.
func SeedSuperuser(db *gorm.DB, s SuperuserSeed) (created bool, err error) {
	var existing model.UserModel
	err = db.Where("username = ?", s.Username).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("lookup %q: %w", s.Username, err)
	}

	hashed, err := authHelper.HashPassword(s.Password)
	if err != nil {
		return false, fmt.Errorf("hash password for %q: %w", s.Username, err)
	}
	u := model.UserModel{
		Username:    s.Username,
		Email:       s.Email,
		Password:    hashed,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := db.Create(&u).Error; err != nil {
		return false, fmt.Errorf("insert %q: %w", s.Username, err)
	}
	return true, nil
}

func SeedSuperuserFromEnv(db *gorm.DB) error {
	log := configs.Log()
	s, ok := SuperuserFromEnv()
	if !ok {
		log.Info("SEED_ADMIN_USERNAME/SEED_ADMIN_PASSWORD not set, skipping superuser")
		return nil
	}
	created, err := SeedSuperuser(db, s)
	if err != nil {
		return err
	}
	if created {
		log.Info("superuser created", zap.String("username", s.Username))
	} else {
		log.Info("superuser already exists, skipped", zap.String("username", s.Username))
	}
	return nil
}
