// Package db provides preference storage over PostgreSQL and SQLite.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/lift/internal/types"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS user_preferences (
	user_id               UUID PRIMARY KEY,
	summary_length        TEXT NOT NULL DEFAULT '',
	flashcard_difficulty  TEXT NOT NULL DEFAULT '',
	ai_tone               TEXT NOT NULL DEFAULT '',
	resume_template       TEXT NOT NULL DEFAULT '',
	cover_letter_template TEXT NOT NULL DEFAULT '',
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and ensures the schema exists
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// GetPreferences returns the stored preferences for a user, or nil if none are stored
func (db *DB) GetPreferences(ctx context.Context, userID uuid.UUID) (*types.Preferences, error) {
	var p types.Preferences
	err := db.pool.QueryRow(ctx,
		`SELECT summary_length, flashcard_difficulty, ai_tone, resume_template, cover_letter_template
		 FROM user_preferences WHERE user_id = $1`,
		userID,
	).Scan(&p.SummaryLength, &p.FlashcardDifficulty, &p.AITone, &p.ResumeTemplate, &p.CoverLetterTemplate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return &p, nil
}

// SavePreferences upserts the preferences for a user
func (db *DB) SavePreferences(ctx context.Context, userID uuid.UUID, p types.Preferences) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_preferences (user_id, summary_length, flashcard_difficulty, ai_tone, resume_template, cover_letter_template)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
			summary_length = $2, flashcard_difficulty = $3, ai_tone = $4,
			resume_template = $5, cover_letter_template = $6, updated_at = NOW()`,
		userID, p.SummaryLength, p.FlashcardDifficulty, p.AITone, p.ResumeTemplate, p.CoverLetterTemplate,
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
