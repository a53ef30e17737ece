// Package cli provides common CLI initialization utilities for cmd/butcem.
package cli

import (
	"log/slog"
	"os"

	"butcem/internal/config"
	"butcem/internal/reports"
	"butcem/internal/storage"
	"github.com/joho/godotenv"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the SQLite store at the given path and runs migrations.
// Returns the store or exits the process on failure.
func InitStore(logger *slog.Logger, dbPath string) *storage.Store {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}

// InitReports opens the report cache file at the given path.
// Returns the report store or exits the process on failure.
func InitReports(logger *slog.Logger, path string) *reports.Store {
	rs, err := reports.Open(path)
	if err != nil {
		logger.Error("Failed to open report store", "error", err, "path", path)
		os.Exit(1)
	}
	return rs
}
