package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lift/internal/types"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_GetPreferences_NotFound(t *testing.T) {
	s := openTestSQLite(t)

	prefs, err := s.GetPreferences(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, prefs)
}

func TestSQLite_SaveAndGet(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()
	userID := uuid.New()

	want := types.Preferences{
		SummaryLength:       "long",
		FlashcardDifficulty: "hard",
		AITone:              "friendly",
		ResumeTemplate:      "modern",
		CoverLetterTemplate: "concise",
	}
	require.NoError(t, s.SavePreferences(ctx, userID, want))

	got, err := s.GetPreferences(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestSQLite_SaveOverwrites(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, s.SavePreferences(ctx, userID, types.Preferences{AITone: "formal"}))
	require.NoError(t, s.SavePreferences(ctx, userID, types.Preferences{AITone: "casual", SummaryLength: "short"}))

	got, err := s.GetPreferences(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "casual", got.AITone)
	assert.Equal(t, "short", got.SummaryLength)
	assert.Empty(t, got.ResumeTemplate)
}

func TestOpenSQLite_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lift.db")
	ctx := context.Background()
	userID := uuid.New()

	s1, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s1.SavePreferences(ctx, userID, types.Preferences{AITone: "warm"}))
	require.NoError(t, s1.Close())

	// Reopening keeps the data and does not fail on the existing schema
	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	got, err := s2.GetPreferences(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "warm", got.AITone)
}
