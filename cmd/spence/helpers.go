package main

import (
	"context"
	"fmt"

	"github.com/amoghbhat/spence/internal/assistant"
	"github.com/amoghbhat/spence/internal/budget"
	"github.com/amoghbhat/spence/internal/config"
	"github.com/amoghbhat/spence/internal/nlp"
	"github.com/amoghbhat/spence/internal/service"
	"github.com/amoghbhat/spence/internal/storage"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/spence/spence.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// buildAssistant wires the assistant pipeline over an open store.
func buildAssistant(store service.Storage) (*assistant.Assistant, *budget.Tracker) {
	resolver := nlp.NewDateResolver()
	tracker := budget.NewTracker(store, store, resolver)
	return assistant.New(store, tracker, resolver), tracker
}
