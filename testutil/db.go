// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/faizan/roster/config"
)

// NewDB opens a migrated in-memory SQLite database that is closed when the
// test finishes.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(context.Background(), config.Database{
		Driver: config.DriverSQLite,
		DSN:    ":memory:",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
