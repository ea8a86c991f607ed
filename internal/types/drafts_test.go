//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeDraft_OmitsEmptyOptionalFields(t *testing.T) {
	draft := ResumeDraft{
		Name:   "Jane Doe",
		Skills: []string{"Go"},
	}

	jsonBytes, err := json.Marshal(draft)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &raw))
	for _, key := range []string{"email", "phone", "address", "linkedin", "objective", "experience", "education", "certifications"} {
		assert.NotContains(t, raw, key)
	}
	assert.Equal(t, "Jane Doe", raw["name"])
	assert.Contains(t, raw, "skills")
}

func TestQuizItem_SolutionIsNull(t *testing.T) {
	item := QuizItem{
		Question:      "What is Go?",
		Options:       []string{"A language", "A game", "A verb"},
		CorrectOption: "A",
	}

	jsonBytes, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"solution":null`)
	assert.Contains(t, string(jsonBytes), `"correctOption":"A"`)
}

func TestPreferences_WithDefaults(t *testing.T) {
	prefs := Preferences{AITone: "friendly"}.WithDefaults()

	assert.Equal(t, "friendly", prefs.AITone)
	assert.Equal(t, DefaultSummaryLength, prefs.SummaryLength)
	assert.Equal(t, DefaultFlashcardDifficulty, prefs.FlashcardDifficulty)
	assert.Equal(t, DefaultResumeTemplate, prefs.ResumeTemplate)
	assert.Equal(t, DefaultCoverLetterTemplate, prefs.CoverLetterTemplate)
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	assert.Equal(t, "medium", prefs.SummaryLength)
	assert.Equal(t, "medium", prefs.FlashcardDifficulty)
	assert.Equal(t, "professional", prefs.AITone)
	assert.Equal(t, "professional", prefs.ResumeTemplate)
	assert.Equal(t, "formal", prefs.CoverLetterTemplate)
}
