package db

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Migrator applies versioned NNNN_name.up.sql / .down.sql files from an fs.FS.
// Each file is executed whole.
type Migrator struct {
	m      *migrate.Migrate
	logger logrus.FieldLogger
}

func NewMigrator(database *sqlx.DB, migrations fs.FS, logger logrus.FieldLogger) (*Migrator, error) {
	sourceDriver, err := openSource(migrations)
	if err != nil {
		return nil, err
	}
	driver, err := postgres.WithInstance(database.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{logger}
	return &Migrator{m: m, logger: logger}, nil
}

func openSource(migrations fs.FS) (source.Driver, error) {
	driver, err := iofs.New(migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}
	return driver, nil
}

// Up runs all pending migrations.
func (m *Migrator) Up() error {
	err := m.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("no new migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	m.logVersion("migrated")
	return nil
}

// Down rolls back the given number of migrations.
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("invalid steps value: %d", steps)
	}
	err := m.m.Steps(-steps)
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	m.logVersion("rolled back")
	return nil
}

// Status reports the applied version; ok is false when nothing ran yet.
func (m *Migrator) Status() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, true, nil
}

func (m *Migrator) Close() error {
	sourceErr, dbErr := m.m.Close()
	return errors.Join(sourceErr, dbErr)
}

func (m *Migrator) logVersion(action string) {
	version, dirty, _ := m.m.Version()
	m.logger.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info(action)
}

type migrateLogger struct {
	logrus.FieldLogger
}

func (migrateLogger) Verbose() bool { return false }
