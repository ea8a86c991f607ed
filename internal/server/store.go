package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jonathan/lift/internal/config"
	"github.com/jonathan/lift/internal/db"
	"github.com/jonathan/lift/internal/preferences"
)

// OpenStore opens the preference store selected by cfg: PostgreSQL when a
// database URL is set, SQLite when a path is set, none otherwise.
// With no store every user gets default preferences.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (preferences.Store, io.Closer, error) {
	switch {
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Info("preference store ready", slog.String("backend", "postgres"))
		return database, database, nil
	case strings.TrimSpace(cfg.SQLitePath) != "":
		database, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Info("preference store ready", slog.String("backend", "sqlite"), slog.String("path", cfg.SQLitePath))
		return database, database, nil
	default:
		logger.Info("no preference store configured, using default preferences")
		return nil, nil, nil
	}
}
