// Package dbtest opens throwaway SQLite databases migrated with the full
// schema.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/med-directory/internal/db"
)

// Open returns an isolated in-memory database. A single connection keeps
// transactions and plain queries on the same sqlite handle.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	return open(t, "")
}

// OpenWithForeignKeys is Open with foreign key enforcement, so ON DELETE
// actions run as they do on postgres.
func OpenWithForeignKeys(t testing.TB) *gorm.DB {
	t.Helper()
	return open(t, "&_foreign_keys=on")
}

func open(t testing.TB, params string) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared" + params
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	return gdb
}
