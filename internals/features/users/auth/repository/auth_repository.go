package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "axflo_backend/internals/features/users/auth/model"
	userModel "axflo_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByUsername(db *gorm.DB, username string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hash string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", hash).Error
}

func TouchLastLogin(db *gorm.DB, userID uuid.UUID, at time.Time) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("last_login", at).Error
}

// IsUsernameTaken: excludeID skips the caller's own row (uuid.Nil on register).
func IsUsernameTaken(db *gorm.DB, username string, excludeID uuid.UUID) (bool, error) {
	if username == "" {
		return false, errors.New("username cannot be empty")
	}
	return exists(db.Model(&userModel.UserModel{}).Where("username = ?", username), excludeID)
}

func IsEmailTaken(db *gorm.DB, email string, excludeID uuid.UUID) (bool, error) {
	if email == "" {
		return false, errors.New("email cannot be empty")
	}
	return exists(db.Model(&userModel.UserModel{}).Where("email = ?", email), excludeID)
}

func exists(q *gorm.DB, excludeID uuid.UUID) (bool, error) {
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

/* ====================== BLACKLIST TOKEN ====================== */

// Only an HMAC of the token is stored.
func tokenDigest(raw, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

func BlacklistToken(ctx context.Context, db *gorm.DB, raw, secret string, ttl time.Duration) error {
	if strings.TrimSpace(raw) == "" || strings.TrimSpace(secret) == "" {
		return nil
	}
	row := authModel.TokenBlacklist{
		Token:     tokenDigest(raw, secret),
		ExpiredAt: time.Now().UTC().Add(ttl),
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
	}).Create(&row).Error
}

func IsBlacklisted(ctx context.Context, db *gorm.DB, raw, secret string) (bool, error) {
	if strings.TrimSpace(raw) == "" || strings.TrimSpace(secret) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", tokenDigest(raw, secret), time.Now().UTC()).
		Count(&n).Error
	return n > 0, err
}

func CleanupExpiredBlacklist(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).
		Where("expired_at <= ?", time.Now().UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
