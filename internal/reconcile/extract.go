// Package reconcile turns raw provider content into client-safe documents: it
// extracts the JSON payload, flattens loosely-shaped values, drops empty fields
// and malformed items, and reports entries the user never supplied.
package reconcile

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/lift/internal/fields"
	"github.com/jonathan/lift/internal/llm"
	"github.com/jonathan/lift/internal/types"
)

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSONObject returns the span from the first '{' to the last '}' in text
func ExtractJSONObject(text string) (string, bool) {
	span := jsonObjectRe.FindString(text)
	return span, span != ""
}

// Unwrap flattens a decoded JSON value into a display string
func Unwrap(v any) string {
	return fields.Unwrap(v)
}

// Blank reports whether s is empty, whitespace-only, or an N/A-style placeholder
func Blank(s string) bool {
	return fields.Blank(s)
}

func decodeObject(content string) (map[string]any, error) {
	span, ok := ExtractJSONObject(llm.CleanJSONBlock(content))
	if !ok {
		return nil, &ParseError{Message: "no JSON object found"}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, &ParseError{Message: "JSON object does not parse", Cause: err}
	}
	return obj, nil
}

// decodeList finds a JSON array in content, either at the top level or under one of keys
func decodeList(content string, keys ...string) ([]any, error) {
	fragment, ok := llm.ExtractJSONFragment(llm.CleanJSONBlock(content))
	if !ok {
		return nil, &ParseError{Message: "no JSON array found"}
	}

	var decoded any
	if err := json.Unmarshal([]byte(fragment), &decoded); err != nil {
		return nil, &ParseError{Message: "JSON fragment does not parse", Cause: err}
	}

	switch v := decoded.(type) {
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range keys {
			if list, ok := v[key].([]any); ok {
				return list, nil
			}
		}
		return nil, &ParseError{Message: fmt.Sprintf("object has none of %s", strings.Join(keys, ", "))}
	default:
		return nil, &ParseError{Message: "JSON fragment is not an array"}
	}
}

// flex adapts a decoded JSON value to the string-or-array shape of user input
func flex(v any) types.FlexList {
	switch val := v.(type) {
	case nil:
		return types.FlexList{}
	case string:
		return types.FlexList{Text: val}
	case []any:
		return types.FlexList{Items: val}
	default:
		return types.FlexList{Items: []any{val}}
	}
}
