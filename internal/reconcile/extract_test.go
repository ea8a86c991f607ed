package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"surrounded", "Here you go:\n{\"a\": {\"b\": 2}}\nEnjoy!", `{"a": {"b": 2}}`, true},
		{"truncated", `{"a": 1`, "", false},
		{"array only", `["a", "b"]`, "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := ExtractJSONObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, span)
		})
	}
}

func TestDecodeObject_Errors(t *testing.T) {
	_, err := decodeObject("no json here")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)

	_, err = decodeObject(`{"name": "Jane",}`)
	require.ErrorAs(t, err, &parseErr)
	assert.Error(t, parseErr.Unwrap())
}

func TestDecodeList(t *testing.T) {
	list, err := decodeList("```json\n[{\"q\": 1}, {\"q\": 2}]\n```", "cards")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = decodeList(`{"cards": [{"q": 1}]}`, "flashcards", "cards")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = decodeList(`{"other": []}`, "cards")
	assert.Error(t, err)

	_, err = decodeList("nothing", "cards")
	assert.Error(t, err)
}

func TestUnwrapAndBlank(t *testing.T) {
	assert.Equal(t, "Engineer", Unwrap(map[string]any{"title": "Engineer", "company": "Acme"}))
	assert.Equal(t, "a, b", Unwrap([]any{"a", " ", "b"}))
	assert.True(t, Blank(" N/A "))
	assert.False(t, Blank("Acme"))
}
