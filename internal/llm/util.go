// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Widest object and array spans in a reply
var (
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
)

// CleanJSONBlock removes markdown code block wrappers and conversational
// preamble or trailing text from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = stripCodeFence(strings.TrimSpace(text))
	if fragment, ok := ExtractJSONFragment(text); ok {
		return fragment
	}
	return text
}

// ExtractJSONFragment returns the JSON-looking array or object span in text.
// When both an object and an array span exist, the longer one that parses wins;
// if neither parses, the span that starts first is returned for the caller to reject.
func ExtractJSONFragment(text string) (string, bool) {
	first, best := "", ""
	firstAt := len(text)
	for _, re := range []*regexp.Regexp{jsonObjectRe, jsonArrayRe} {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		span := text[loc[0]:loc[1]]
		if loc[0] < firstAt {
			first, firstAt = span, loc[0]
		}
		if len(span) > len(best) && json.Valid([]byte(span)) {
			best = span
		}
	}

	switch {
	case best != "":
		return best, true
	case first != "":
		return first, true
	default:
		return "", false
	}
}

func stripCodeFence(text string) string {
	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
