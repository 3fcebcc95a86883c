package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "axflo_backend/internals/databases"
	contentModel "axflo_backend/internals/features/home/contents/model"
	"axflo_backend/internals/helpers/storage"
)

var dbSeq int64

// NewDB opens a private in-memory sqlite database migrated with every model.
// ServiceDescription is skipped: its features column is a postgres array.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	models := make([]interface{}, 0, len(database.Models()))
	for _, m := range database.Models() {
		if _, ok := m.(*contentModel.ServiceDescriptionModel); ok {
			continue
		}
		models = append(models, m)
	}
	require.NoError(t, db.AutoMigrate(models...))
	return db
}

// NewBlob returns a local media store rooted in a temp dir.
func NewBlob(t testing.TB) *storage.LocalBlobService {
	t.Helper()
	return storage.NewLocalBlobService(t.TempDir(), "/media")
}
