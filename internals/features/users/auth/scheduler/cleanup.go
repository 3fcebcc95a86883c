package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	authRepo "axflo_backend/internals/features/users/auth/repository"
	"axflo_backend/internals/helpers/storage"
)

// Start registers the periodic jobs and starts the cron runner. The caller
// stops it on shutdown.
func Start(db *gorm.DB) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	blacklistSpec := configs.GetEnv("BLACKLIST_CLEANUP_CRON", "@every 24h")
	if _, err := c.AddFunc(blacklistSpec, func() { CleanupBlacklist(db) }); err != nil {
		return nil, err
	}

	sweepSpec := configs.GetEnv("MEDIA_TMP_SWEEP_CRON", "@every 1h")
	root := configs.Cfg.MediaRoot
	if _, err := c.AddFunc(sweepSpec, func() { SweepMediaTmp(root) }); err != nil {
		return nil, err
	}

	c.Start()
	configs.Log().Info("⏰ scheduler started",
		zap.String("blacklist_cleanup", blacklistSpec),
		zap.String("media_tmp_sweep", sweepSpec),
	)
	return c, nil
}

func CleanupBlacklist(db *gorm.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	n, err := authRepo.CleanupExpiredBlacklist(ctx, db)
	if err != nil {
		configs.Log().Error("[CLEANUP] token_blacklist cleanup failed", zap.Error(err))
		return
	}
	configs.Log().Info("[CLEANUP] token_blacklist cleaned", zap.Int64("deleted", n))
}

func SweepMediaTmp(root string) {
	n, err := storage.SweepTmp(root, 6*time.Hour, time.Now())
	if err != nil {
		configs.Log().Error("[CLEANUP] media tmp sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		configs.Log().Info("[CLEANUP] media tmp swept", zap.Int("removed", n))
	}
}
