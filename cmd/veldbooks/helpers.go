// Package main contains the veldbooks CLI commands.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"github.com/veldbooks/veldbooks/internal/config"
	"github.com/veldbooks/veldbooks/internal/storage"
)

// openStorage opens the database from config and applies pending migrations.
// Callers own closing the returned storage.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/veldbooks/veldbooks.db"
	}
	dbPath = config.ExpandPath(dbPath)

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
