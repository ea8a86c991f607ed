// Package main provides the entry point for the Lift generation service and CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/lift/internal/config"
	"github.com/jonathan/lift/internal/observability"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "lift",
	Short:         "Lift AI generation service",
	Long:          "Lift generates resumes, cover letters, study summaries, flashcards and quizzes. A remote model is used when configured; built-in templates answer otherwise.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON config file (environment variables override it)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRuntime loads configuration and builds the logger. The closer flushes
// the rotated log file, if any.
func loadRuntime(stderr io.Writer) (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := observability.NewLogger(cfg.LogConfig(), stderr)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	slog.SetDefault(logger)
	return cfg, logger, closer, nil
}
