package storage

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"axflo_backend/internals/configs"
)

// SweepTmp removes files under <root>/tmp older than maxAge. Returns the
// number of files removed.
func SweepTmp(root string, maxAge time.Duration, now time.Time) (int, error) {
	dir := filepath.Join(root, tmpDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < maxAge {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			configs.Log().Warn("tmp sweep: remove failed", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}
