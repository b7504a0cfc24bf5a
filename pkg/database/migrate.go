package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/el-timetable/pkg/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every pending schema migration. It returns the resulting version.
func Migrate(db *sqlx.DB, driver string) (uint, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return 0, fmt.Errorf("load migrations: %w", err)
	}

	var target database.Driver
	switch driver {
	case config.DriverPostgres:
		target, err = postgres.WithInstance(db.DB, &postgres.Config{})
	default:
		target, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	}
	if err != nil {
		return 0, fmt.Errorf("prepare migration driver: %w", err)
	}

	// m.Close would also close the shared *sql.DB, so only the source is released.
	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		_ = src.Close()
		return 0, fmt.Errorf("init migrator: %w", err)
	}
	defer src.Close() //nolint:errcheck

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}
