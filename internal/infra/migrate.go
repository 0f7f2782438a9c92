package infra

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"mothwallet/internal/config"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrateUp applies the schema for the configured driver: versioned SQL
// migrations on Postgres, gorm AutoMigrate on SQLite.
func MigrateUp(cfg config.DatabaseConfig, db *gorm.DB, log *zap.Logger) error {
	if cfg.Driver == config.DriverSQLite {
		log.Info("applying sqlite schema")
		return AutoMigrate(db)
	}
	return migratePostgres(cfg.URL, log)
}

func migratePostgres(dsn string, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer sqlDB.Close()

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migrate version: %w", err)
	}
	log.Info("postgres schema ready", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
