package postgres

import (
	"embed"
	"errors"
	"fmt"
	"taskPlanner/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func (s *Storage) migrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(stdlib.OpenDBFromPool(s.pool), &pgxmigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("migrations driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("migrations init: %w", err)
	}
	return m, nil
}

// Migrate applies every pending migration. Already up to date is not an error.
func (s *Storage) Migrate() error {
	logger.Info("Repository: Applying migrations")

	m, err := s.migrator()
	if err != nil {
		logger.Error("Repository: Migrations unavailable", err)
		return err
	}

	defer closeMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: Migrations failed", err)
		return fmt.Errorf("migrations up: %w", err)
	}

	logger.Info("Repository: Migrations applied")
	return nil
}

func (s *Storage) Down() error {
	logger.Info("Repository: Rolling back migrations")

	m, err := s.migrator()
	if err != nil {
		logger.Error("Repository: Migrations unavailable", err)
		return err
	}

	defer closeMigrator(m)

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: Rollback failed", err)
		return fmt.Errorf("migrations down: %w", err)
	}

	logger.Info("Repository: Migrations rolled back")
	return nil
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("Repository: Closing migrations source", zap.Error(srcErr))
	}
	if dbErr != nil {
		logger.Warn("Repository: Closing migrations driver", zap.Error(dbErr))
	}
}
