// Package source loads the launch table from the configured backend.
package source

import (
	"context"
	"fmt"

	"launchdash/internal/config"
	"launchdash/internal/dataset"
	"launchdash/internal/db"
)

// Load builds the record store from CSV or Postgres. When Postgres is used
// the open database is returned so the caller can probe and close it;
// otherwise the returned *db.DB is nil.
func Load(ctx context.Context, cfg *config.Config) (*dataset.Store, *db.DB, error) {
	if !cfg.UsesPostgres() {
		records, err := dataset.LoadCSVFile(cfg.DatasetPath)
		if err != nil {
			return nil, nil, err
		}
		store, err := dataset.New(records)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", cfg.DatasetPath, err)
		}
		return store, nil, nil
	}

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, nil, err
	}

	records, err := database.LoadLaunchRecords(ctx)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	store, err := dataset.New(records)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return store, database, nil
}
