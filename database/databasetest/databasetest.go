// Package databasetest opens throwaway in-memory SQLite databases with the
// full schema migrated and foreign keys enforced.
package databasetest

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-backend/config"
	"github.com/junaidrashid-git/storefront-backend/database"
	"gorm.io/gorm"
)

// Open returns a migrated database closed at the end of the test. The pool is
// limited to one connection so the in-memory database lives as long as the
// test does.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.Config{
		DBDriver:     config.DriverSQLite,
		DatabaseURL:  "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	db, err := database.Open(cfg, Logger())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
