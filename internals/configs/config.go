package configs

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// AppConfig is loaded once at boot and never mutated afterwards.
type AppConfig struct {
	JWTSecret         string
	AccessTokenTTL    time.Duration
	CookieSecure      bool
	MediaRoot         string
	MediaURL          string
	CorsAllowOrigins  string
	RedisURL          string
	ContactWebhookURL string
	Debug             bool

	SiteHeader string
	SiteTitle  string
	IndexTitle string
}

var (
	JWTSecret string
	Cfg       AppConfig
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("⚠️ .env file not found, using system environment")
		} else {
			fmt.Println("✅ .env file loaded")
		}
	} else {
		fmt.Println("🚀 Running in Railway, using system environment")
	}

	InitLogger(GetEnv("LOG_LEVEL", "info"), GetEnv("LOG_FORMAT", "json"), GetEnv("SERVICE_NAME", "axflo-backend"))

	Cfg = AppConfig{
		JWTSecret:         GetEnv("JWT_SECRET"),
		AccessTokenTTL:    time.Duration(GetEnvInt("ACCESS_TOKEN_TTL_HOURS", 12)) * time.Hour,
		CookieSecure:      GetEnvBool("COOKIE_SECURE", true),
		MediaRoot:         GetEnv("MEDIA_ROOT", "media"),
		MediaURL:          strings.TrimRight(GetEnv("MEDIA_URL", "/media"), "/"),
		CorsAllowOrigins:  GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		RedisURL:          GetEnv("REDIS_URL"),
		ContactWebhookURL: GetEnv("CONTACT_WEBHOOK_URL"),
		Debug:             GetEnvBool("DEBUG", false),

		SiteHeader: GetEnv("ADMIN_SITE_HEADER", "Axflo Oil & Gas Administration"),
		SiteTitle:  GetEnv("ADMIN_SITE_TITLE", "Axflo Admin"),
		IndexTitle: GetEnv("ADMIN_INDEX_TITLE", "Welcome to Axflo Administration"),
	}
	JWTSecret = Cfg.JWTSecret

	if JWTSecret == "" {
		Log().Warn("❌ JWT_SECRET is not set")
	} else {
		Log().Info("✅ JWT_SECRET loaded")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// =======================
// DATABASE CONNECTOR
// =======================
func InitSeederDB() *gorm.DB {
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		GetEnv("DB_USER"), GetEnv("DB_PASSWORD"), GetEnv("DB_HOST"),
		GetEnv("DB_PORT"), GetEnv("DB_NAME"), GetEnv("DB_SSLMODE", "require"))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		Log().Fatal("❌ seeder database connection failed", zap.Error(err))
	}
	Log().Info("✅ seeder database connected")
	return db
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if Cfg.Debug {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		Log().Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		Log().Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		Log().Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && err != gorm.ErrRecordNotFound && l.LogLevel >= gormLogger.Error:
		Log().Error("[SQL ERROR]", append(fields, zap.Error(err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		Log().Warn("[SLOW SQL]", fields...)
	case l.LogLevel >= gormLogger.Info:
		Log().Debug("[QUERY]", fields...)
	}
}
