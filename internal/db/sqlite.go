package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/lift/internal/types"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS user_preferences (
	user_id               TEXT PRIMARY KEY,
	summary_length        TEXT NOT NULL DEFAULT '',
	flashcard_difficulty  TEXT NOT NULL DEFAULT '',
	ai_tone               TEXT NOT NULL DEFAULT '',
	resume_template       TEXT NOT NULL DEFAULT '',
	cover_letter_template TEXT NOT NULL DEFAULT '',
	updated_at            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLite stores preferences in a local SQLite file
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite database at path.
// Pass ":memory:" for an in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// One connection avoids "database is locked" and keeps :memory: a single database.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode=WAL",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLite{db: conn}, nil
}

// Close closes the underlying database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetPreferences returns the stored preferences for a user, or nil if none are stored
func (s *SQLite) GetPreferences(ctx context.Context, userID uuid.UUID) (*types.Preferences, error) {
	var p types.Preferences
	err := s.db.QueryRowContext(ctx,
		`SELECT summary_length, flashcard_difficulty, ai_tone, resume_template, cover_letter_template
		 FROM user_preferences WHERE user_id = ?`,
		userID.String(),
	).Scan(&p.SummaryLength, &p.FlashcardDifficulty, &p.AITone, &p.ResumeTemplate, &p.CoverLetterTemplate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return &p, nil
}

// SavePreferences upserts the preferences for a user
func (s *SQLite) SavePreferences(ctx context.Context, userID uuid.UUID, p types.Preferences) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, summary_length, flashcard_difficulty, ai_tone, resume_template, cover_letter_template)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			summary_length = excluded.summary_length,
			flashcard_difficulty = excluded.flashcard_difficulty,
			ai_tone = excluded.ai_tone,
			resume_template = excluded.resume_template,
			cover_letter_template = excluded.cover_letter_template,
			updated_at = CURRENT_TIMESTAMP`,
		userID.String(), p.SummaryLength, p.FlashcardDifficulty, p.AITone, p.ResumeTemplate, p.CoverLetterTemplate,
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
