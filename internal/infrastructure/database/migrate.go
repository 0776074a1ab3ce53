package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
)

const defaultMigrationsSource = "file://migrations"

// RunMigrations applies every pending up migration found at source to the
// database at databaseURL. A database that is already current is not an error.
func RunMigrations(databaseURL, source string, logger zerolog.Logger) error {
	source = migrationsSource(source)

	m, err := migrate.New(source, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info().Str("source", source).Msg("database schema already up to date")
			return nil
		}
		return fmt.Errorf("failed to run up migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("database migrations applied")
	return nil
}

// migrationsSource accepts a bare directory as well as a source URL.
func migrationsSource(source string) string {
	switch {
	case source == "":
		return defaultMigrationsSource
	case strings.Contains(source, "://"):
		return source
	default:
		return "file://" + source
	}
}
