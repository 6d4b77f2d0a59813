package cmd

import (
	"context"
	"fmt"

	"bankhub/config"
	"bankhub/database"
	"bankhub/domain/interfaces"
	"bankhub/repository"

	log "github.com/sirupsen/logrus"
)

// openStore opens the configured bank store. The returned close func releases
// the database pool for the postgres backend and is a no-op otherwise.
func openStore(ctx context.Context, cfg *config.Config) (interfaces.BankStore, func(), error) {
	if !cfg.UsesPostgres() {
		store, err := repository.OpenJSONBankStore(cfg.BankDataFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open banking data: %w", err)
		}
		log.WithField("path", store.Path()).Info("Using JSON bank store")
		return store, func() {}, nil
	}

	databaseURL := cfg.GetDatabaseURL()
	if err := database.MigrateUp(databaseURL); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.WithField("database", cfg.DatabaseName).Info("Using PostgreSQL bank store")

	return repository.NewPostgresBankStore(db), db.Close, nil
}
