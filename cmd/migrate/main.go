package main

import (
	"flag"

	"matchup/internal/config"
	"matchup/internal/db"
	"matchup/internal/logging"
	"matchup/migrations"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of migrating up")
	status := flag.Bool("status", false, "print the applied migration version and exit")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect database")
	}
	defer database.Close()

	migrator, err := db.NewMigrator(database, migrations.FS, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open migrations")
	}
	defer migrator.Close()

	switch {
	case *status:
		version, dirty, ok, err := migrator.Status()
		if err != nil {
			logger.WithError(err).Fatal("status failed")
		}
		if !ok {
			logger.Info("no migrations have been applied yet")
			return
		}
		logger.WithField("version", version).WithField("dirty", dirty).Info("current migration version")
	case *down > 0:
		if err := migrator.Down(*down); err != nil {
			logger.WithError(err).Fatal("rollback failed")
		}
	default:
		if err := migrator.Up(); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
	}
}
