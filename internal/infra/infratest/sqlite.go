// Package infratest opens throwaway stores for tests.
package infratest

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mothwallet/internal/config"
	"mothwallet/internal/infra"
)

// NewSQLite returns a migrated in-memory database closed when t ends.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, URL: "file::memory:"}
	log := zap.NewNop()

	db, err := infra.OpenDatabase(cfg, log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	t.Cleanup(func() { infra.CloseDatabase(db, log) })
	return db
}
