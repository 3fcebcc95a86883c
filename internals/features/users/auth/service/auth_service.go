package service

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	"axflo_backend/internals/constants"
	authHelper "axflo_backend/internals/features/users/auth/helper"
	authRepo "axflo_backend/internals/features/users/auth/repository"
	userModel "axflo_backend/internals/features/users/user/model"
	helpers "axflo_backend/internals/helpers"
)

func nowUTC() time.Time { return time.Now().UTC() }

func accessTTL() time.Duration {
	if configs.Cfg.AccessTokenTTL > 0 {
		return configs.Cfg.AccessTokenTTL
	}
	return 12 * time.Hour
}

/* ==========================
   SESSION
========================== */

// IssueSession signs a fresh access token for user and sets the cookie.
func IssueSession(c *fiber.Ctx, user *userModel.UserModel) (string, error) {
	now := nowUTC()
	token, err := helpers.SignAccessToken(configs.JWTSecret, user.ID, user.Username, user.IsStaff, user.IsSuperuser, now, accessTTL())
	if err != nil {
		return "", err
	}
	helpers.SetAuthCookie(c, token, now.Add(accessTTL()), configs.Cfg.CookieSecure)
	helpers.SetRawAccessToken(c, token)
	return token, nil
}

// EndSession revokes the caller's token and clears the cookie. Idempotent.
func EndSession(c *fiber.Ctx, db *gorm.DB) {
	accessToken := helpers.GetRawAccessToken(c)
	if accessToken != "" {
		if err := authRepo.BlacklistToken(c.UserContext(), db, accessToken, configs.JWTSecret, resolveBlacklistTTL(accessToken)); err != nil {
			configs.Log().Warn("failed to blacklist token", zap.Error(err))
		}
	}
	helpers.ClearAuthCookie(c, configs.Cfg.CookieSecure)
}

// resolveBlacklistTTL keeps the digest until the token would expire anyway.
func resolveBlacklistTTL(accessToken string) time.Duration {
	ttl := 2 * time.Minute
	if v := os.Getenv("BLACKLIST_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	exp := helpers.TokenExpiry(configs.JWTSecret, accessToken)
	if exp.IsZero() {
		return ttl
	}
	if until := time.Until(exp); until > 0 {
		return until + 60*time.Second
	}
	return time.Minute
}

// CurrentUser resolves the session without enforcing it. Nil when the caller
// is anonymous or the token is no longer usable.
func CurrentUser(ctx context.Context, db *gorm.DB, c *fiber.Ctx) *userModel.UserModel {
	raw := helpers.GetRawAccessToken(c)
	if raw == "" || configs.JWTSecret == "" {
		return nil
	}
	claims, err := helpers.ParseAccessToken(configs.JWTSecret, raw)
	if err != nil {
		return nil
	}
	exp, ok := claims["exp"].(float64)
	if !ok || nowUTC().After(time.Unix(int64(exp), 0)) {
		return nil
	}
	if bl, err := authRepo.IsBlacklisted(ctx, db, raw, configs.JWTSecret); err != nil || bl {
		return nil
	}
	idStr, _ := claims["id"].(string)
	userID, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil {
		return nil
	}
	user, err := authRepo.FindUserByID(db.WithContext(ctx), userID)
	if err != nil || !user.IsActive {
		return nil
	}
	return user
}

/* ==========================
   LOGIN
========================== */

type loginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// GET /admin-login/
func LoginStatus(db *gorm.DB, c *fiber.Ctx) error {
	if u := CurrentUser(c.UserContext(), db, c); u != nil && u.CanAccessAdmin() {
		return helpers.JsonOK(c, "Already logged in", fiber.Map{
			"authenticated": true,
			"redirect":      constants.DashboardPath,
		})
	}
	return helpers.JsonOK(c, "Login required", fiber.Map{
		"authenticated": false,
		"redirect":      nil,
	})
}

// POST /admin-login/
func Login(db *gorm.DB, c *fiber.Ctx) error {
	if u := CurrentUser(c.UserContext(), db, c); u != nil && u.CanAccessAdmin() {
		return helpers.JsonOK(c, "Already logged in", fiber.Map{"redirect": constants.DashboardPath})
	}

	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Username = strings.TrimSpace(input.Username)
	input.Password = strings.TrimSpace(input.Password)

	if input.Username == "" || input.Password == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Please provide both username and password")
	}

	user, err := authRepo.FindUserByUsername(db, input.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configs.Log().Error("login lookup failed", zap.Error(err))
		}
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
	}
	if !user.IsActive || authHelper.CheckPasswordHash(user.Password, input.Password) != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
	}
	if !(user.IsStaff || user.IsSuperuser) {
		return helpers.JsonError(c, fiber.StatusForbidden, constants.ErrNoAdminAccess)
	}

	token, err := IssueSession(c, user)
	if err != nil {
		configs.Log().Error("sign token failed", zap.Error(err))
		return helpers.JsonError(c, fiber.StatusInternalServerError, "An error occurred. Please try again later.")
	}
	now := nowUTC()
	if err := authRepo.TouchLastLogin(db, user.ID, now); err != nil {
		configs.Log().Warn("update last_login failed", zap.Error(err))
	}
	user.LastLogin = &now

	configs.Log().Info("✅ admin login", zap.String("username", user.Username))
	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"access_token": token,
		"redirect":     constants.DashboardPath,
		"user":         user,
	})
}

/* ==========================
   REGISTER
========================== */

type registerInput struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm"`
}

// Register creates a staff + superuser account.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.Password = strings.TrimSpace(input.Password)
	input.PasswordConfirm = strings.TrimSpace(input.PasswordConfirm)

	if input.Username == "" || input.Email == "" || input.Password == "" || input.PasswordConfirm == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "All fields are required")
	}
	if input.Password != input.PasswordConfirm {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Passwords do not match")
	}
	if len(input.Password) < authHelper.MinPasswordLength {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Password must be at least 8 characters long")
	}

	if taken, err := authRepo.IsUsernameTaken(db, input.Username, uuid.Nil); err != nil {
		return helpers.FromFiberError(c, err)
	} else if taken {
		return helpers.JsonError(c, fiber.StatusConflict, "Username already exists")
	}
	if taken, err := authRepo.IsEmailTaken(db, input.Email, uuid.Nil); err != nil {
		return helpers.FromFiberError(c, err)
	} else if taken {
		return helpers.JsonError(c, fiber.StatusConflict, "Email already exists")
	}

	hash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		Username:    input.Username,
		Email:       input.Email,
		Password:    hash,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := authRepo.CreateUser(db, &user); err != nil {
		if helpers.IsUniqueViolation(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Username already exists")
		}
		return helpers.FromFiberError(c, err)
	}

	return helpers.JsonCreated(c, "Admin account created successfully! You can now login.", fiber.Map{
		"redirect": constants.LoginPath,
	})
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	EndSession(c, db)
	return helpers.JsonOK(c, "You have been logged out successfully", fiber.Map{
		"redirect": constants.LoginPath,
	})
}
