// Package migration applies the embedded schema migrations on startup. The
// same SQL runs on both supported engines; golang-migrate tracks the applied
// version in its schema_migrations table.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"arkiv/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// EnsureMigrated brings the schema of db up to the latest embedded version.
// It is safe to call on every startup; an up-to-date schema is a no-op.
func EnsureMigrated(db *sql.DB, driver string, log *zap.Logger) error {
	start := time.Now()

	log.Info("db_migration_check",
		zap.String("component", "database"),
		zap.String("driver", driver),
	)

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	var dbDriver database.Driver
	switch driver {
	case config.DriverPostgres:
		dbDriver, err = pgmigrate.WithInstance(db, &pgmigrate.Config{})
	default:
		dbDriver, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	}
	if err != nil {
		return fmt.Errorf("init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("db_migration_failed",
			zap.String("component", "database"),
			zap.String("driver", driver),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}

	log.Info("db_migration_success",
		zap.String("component", "database"),
		zap.String("driver", driver),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
