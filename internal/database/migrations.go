package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"

	"github.com/hormone-insights-server/internal/config"
	"github.com/hormone-insights-server/internal/domain"
)

// MigrationRunner applies schema migrations from a directory of SQL files.
type MigrationRunner struct {
	cfg    domain.DatabaseConfig
	logger *logrus.Logger
}

// NewMigrationRunner creates a migration runner.
func NewMigrationRunner(cfg domain.DatabaseConfig, logger *logrus.Logger) *MigrationRunner {
	return &MigrationRunner{cfg: cfg, logger: logger}
}

// Up applies all pending migrations. No pending changes is not an error.
func (r *MigrationRunner) Up() error {
	m, err := migrate.New("file://"+r.cfg.MigrationsPath, config.DSN(r.cfg))
	if err != nil {
		return fmt.Errorf("initializing migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			r.logger.WithFields(logrus.Fields{
				"source_err": srcErr,
				"db_err":     dbErr,
			}).Warn("Closing migration runner reported errors")
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Debug("No pending migrations")
			return nil
		}
		return fmt.Errorf("applying migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("reading migration version: %w", err)
	}
	r.logger.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("Migrations applied")
	return nil
}
