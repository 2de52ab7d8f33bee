package main

import (
	"context"
	"fmt"

	"github.com/mattjh/bidwatch/internal/config"
	"github.com/mattjh/bidwatch/internal/storage"
)

// initStorage opens the local database and ensures the schema exists.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
