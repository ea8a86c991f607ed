package templates

import (
	"regexp"
	"strings"
)

// EmptySummary is returned when there are no notes to summarize
const EmptySummary = "No content provided to elaborate on."

// Summary lengths
const (
	SummaryShort  = "short"
	SummaryMedium = "medium"
	SummaryLong   = "long"
)

var summaryLineCounts = map[string]int{
	SummaryShort:  3,
	SummaryMedium: 5,
	SummaryLong:   8,
}

type elaboration struct {
	pattern *regexp.Regexp
	text    string
}

var elaborations = []elaboration{
	{
		regexp.MustCompile(`(?i)photosynthesis|plant`),
		"This connects to how plants capture light energy and turn carbon dioxide and water into glucose and oxygen, the process that sustains most food chains.",
	},
	{
		regexp.MustCompile(`(?i)formula|equation`),
		"This relationship can be written mathematically. Work through an example by substituting values to see how each variable changes the result.",
	},
	{
		regexp.MustCompile(`(?i)cycle|process`),
		"This describes a sequence of stages. Knowing how each step leads to the next makes the whole process easier to remember.",
	},
}

const genericElaboration = "This is a key point worth reviewing. Consider how it connects to the surrounding material and try restating it in your own words."

// SummaryLineCount returns how many note lines a summary of the given length covers
func SummaryLineCount(length string) int {
	if n, ok := summaryLineCounts[strings.ToLower(strings.TrimSpace(length))]; ok {
		return n
	}
	return summaryLineCounts[SummaryMedium]
}

// BuildSummary expands the leading lines of the notes into short study paragraphs
func BuildSummary(in NotesInput) string {
	if strings.TrimSpace(in.Notes) == "" {
		return EmptySummary
	}

	var lines []string
	for _, line := range NonEmptyLines(in.Notes) {
		if cleaned := cleanCandidate(line); cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	if len(lines) == 0 {
		return EmptySummary
	}
	if limit := SummaryLineCount(in.SummaryLength); len(lines) > limit {
		lines = lines[:limit]
	}

	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		paragraphs = append(paragraphs, trimTerminal(line)+". "+elaborate(line))
	}
	return strings.Join(paragraphs, "\n\n")
}

func elaborate(line string) string {
	for _, e := range elaborations {
		if e.pattern.MatchString(line) {
			return e.text
		}
	}
	return genericElaboration
}
