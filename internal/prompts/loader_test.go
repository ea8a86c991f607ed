package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(CareerFile, "resume-system")
	require.NoError(t, err)
	assert.Contains(t, prompt, "never invent employers")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(NotesFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestRender_FillsEveryPlaceholder(t *testing.T) {
	data := map[string]string{
		"Tone":       "friendly",
		"Template":   "modern",
		"Length":     "short",
		"Difficulty": "hard",
		"Input":      "Photosynthesis: light to sugar",
	}

	tests := []struct {
		file string
		kind string
	}{
		{CareerFile, "resume"},
		{CareerFile, "cover"},
		{NotesFile, "summary"},
		{NotesFile, "flashcards"},
		{NotesFile, "quiz"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			pair, err := Render(tt.file, tt.kind, data)
			require.NoError(t, err)
			assert.NotContains(t, pair.System, "{{.")
			assert.NotContains(t, pair.User, "{{.")
			assert.Contains(t, pair.User, "<user_input>\nPhotosynthesis: light to sugar\n</user_input>")
		})
	}
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := Render(NotesFile, "essay", nil)
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	template := "Write in a {{.Tone}} tone for {{.Template}}."
	result := Format(template, map[string]string{"Tone": "formal", "Template": "classic"})
	assert.Equal(t, "Write in a formal tone for classic.", result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{}))
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(NotesFile)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"flashcards-system", "flashcards-user",
		"quiz-system", "quiz-user",
		"summary-system", "summary-user",
	}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get(CareerFile, "cover-user")
	require.NoError(t, err)

	prompt2, err := Get(CareerFile, "cover-user")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
	assert.True(t, strings.Contains(prompt1, "exactly two"))
}
