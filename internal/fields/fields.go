// Package fields normalizes loosely-shaped user and provider values into display strings
// and parses delimited resume lines into structured entries.
package fields

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/lift/internal/types"
)

// unwrapPriority lists the keys consulted, in order, when flattening an object to a string.
var unwrapPriority = []string{
	"name", "title", "degree", "school", "company", "position",
	"dates", "details", "description", "text", "value",
}

// blankMarkers are values providers emit in place of an empty field.
var blankMarkers = map[string]bool{
	"n/a":       true,
	"na":        true,
	"none":      true,
	"null":      true,
	"nil":       true,
	"undefined": true,
	"-":         true,
}

// Blank reports whether s is empty, whitespace-only, or an N/A-style placeholder.
func Blank(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}
	return blankMarkers[strings.ToLower(trimmed)]
}

// Clean trims s and collapses placeholders to the empty string.
func Clean(s string) string {
	if Blank(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

// Unwrap flattens an arbitrary decoded JSON value into a display string.
// Objects resolve through unwrapPriority, then a single-key unwrap, then
// all values (sorted by key) joined with an em-dash.
func Unwrap(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return Clean(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := Unwrap(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		return unwrapObject(val)
	default:
		return Clean(fmt.Sprint(val))
	}
}

func unwrapObject(obj map[string]any) string {
	for _, key := range unwrapPriority {
		if raw, ok := obj[key]; ok {
			if s := Unwrap(raw); s != "" {
				return s
			}
		}
	}

	if len(obj) == 1 {
		for _, raw := range obj {
			return Unwrap(raw)
		}
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if s := Unwrap(obj[key]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " — ")
}

// FirstOf returns the first non-blank unwrapped value among keys of obj.
func FirstOf(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := Unwrap(obj[key]); s != "" {
			return s
		}
	}
	return ""
}

var listSeparator = regexp.MustCompile(`[,;\n]`)

// Lines returns the non-blank lines of a FlexList. Text is split on newlines;
// scalar items are unwrapped. Object items are skipped (see Objects).
func Lines(f types.FlexList) []string {
	var lines []string
	if f.Items != nil {
		for _, item := range f.Items {
			if _, isObject := item.(map[string]any); isObject {
				continue
			}
			lines = append(lines, splitLines(Unwrap(item))...)
		}
		return lines
	}
	return splitLines(f.Text)
}

// Objects returns the object items of a FlexList.
func Objects(f types.FlexList) []map[string]any {
	var objects []map[string]any
	for _, item := range f.Items {
		if obj, ok := item.(map[string]any); ok {
			objects = append(objects, obj)
		}
	}
	return objects
}

// Values returns the individual values of a comma, semicolon, or newline separated list.
func Values(f types.FlexList) []string {
	var values []string
	if f.Items != nil {
		for _, item := range f.Items {
			if s := Unwrap(item); s != "" {
				values = append(values, s)
			}
		}
		return values
	}
	for _, part := range listSeparator.Split(f.Text, -1) {
		if s := Clean(part); s != "" {
			values = append(values, s)
		}
	}
	return values
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if s := Clean(line); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}
