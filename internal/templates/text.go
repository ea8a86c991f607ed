package templates

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// sentenceRe requires terminal punctuation
	sentenceRe      = regexp.MustCompile(`[^.!?]+[.!?]+`)
	// looseSentenceRe also accepts a trailing fragment without punctuation
	looseSentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)
	leadingMarkerRe = regexp.MustCompile(`^\s*(?:[-*•·>]+\s*|\(?(?:\d+|[a-zA-Z])[.)]\s+)`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// Sentences returns the punctuated sentences of text, trimmed
func Sentences(text string) []string {
	return trimAll(sentenceRe.FindAllString(text, -1))
}

func looseSentences(text string) []string {
	return trimAll(looseSentenceRe.FindAllString(text, -1))
}

// NonEmptyLines returns the trimmed non-empty lines of text
func NonEmptyLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return trimAll(strings.Split(text, "\n"))
}

func trimAll(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cleanCandidate strips list markers and surrounding quotes and collapses whitespace
func cleanCandidate(s string) string {
	s = leadingMarkerRe.ReplaceAllString(s, "")
	s = strings.Trim(strings.TrimSpace(s), "\"'“”‘’`")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// truncate shortens s to at most n runes, appending an ellipsis when cut
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

func trimTerminal(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".!?;:,")
}
