// Package validation provides safeguards against prompt injection in user-supplied text.
package validation

import (
	"log/slog"
	"regexp"
	"strings"
)

// InjectionCheckResult holds the result of a basic injection heuristic check.
type InjectionCheckResult struct {
	IsSafe           bool     // Whether the content passed the basic heuristic check
	DetectedKeywords []string // Any suspicious phrases found
	Reason           string   // Human-readable explanation
}

// BasicInjectionKeywords contains phrases that suggest prompt injection attempts.
// Single common words ("ignore", "you are") are left out because study notes and
// cover letters use them legitimately.
var BasicInjectionKeywords = []string{
	"system prompt",
	"new instructions",
	"ignore previous",
	"ignore all",
	"ignore the above",
	"forget everything",
	"disregard above",
	"disregard previous",
	"pretend you are",
	"roleplay as",
}

// commonInjectionPatterns are regex patterns for obvious injection attempts.
var commonInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+instructions?`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior|everything)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+an?\b`),
	regexp.MustCompile(`(?i)act\s+as\s+if\s+you\s+are`),
	regexp.MustCompile(`(?i)new\s+instructions?:`),
}

// delimiterRe matches the tags prompts use to fence user input
var delimiterRe = regexp.MustCompile(`(?i)<\s*/?\s*user_input\s*>`)

// CheckBasicHeuristics performs a keyword and pattern check for obvious injection attempts.
// It only informs logging; prompts fence user input regardless of the result.
func CheckBasicHeuristics(text string) *InjectionCheckResult {
	lowerText := strings.ToLower(text)
	var detected []string

	for _, keyword := range BasicInjectionKeywords {
		if strings.Contains(lowerText, keyword) {
			detected = append(detected, keyword)
		}
	}
	for _, pattern := range commonInjectionPatterns {
		if match := pattern.FindString(text); match != "" {
			detected = appendUnique(detected, strings.ToLower(match))
		}
	}

	if len(detected) == 0 {
		return &InjectionCheckResult{IsSafe: true}
	}
	return &InjectionCheckResult{
		IsSafe:           false,
		DetectedKeywords: detected,
		Reason:           "detected potential injection phrases: " + strings.Join(detected, ", "),
	}
}

// NeutralizeDelimiters rewrites any <user_input> tags inside user text so the
// text cannot close the fence it is placed in.
func NeutralizeDelimiters(text string) string {
	return delimiterRe.ReplaceAllStringFunc(text, func(tag string) string {
		tag = strings.ReplaceAll(tag, "<", "[")
		return strings.ReplaceAll(tag, ">", "]")
	})
}

// LogInjectionWarning logs a warning if suspicious content is detected.
// It does NOT block processing.
func LogInjectionWarning(logger *slog.Logger, result *InjectionCheckResult, source string) {
	if result == nil || result.IsSafe {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("potential prompt injection in user input",
		slog.String("source", source),
		slog.Any("phrases", result.DetectedKeywords),
	)
}

// Guard checks text, logs suspicious input, and returns it ready for a fenced prompt.
func Guard(logger *slog.Logger, text, source string) string {
	LogInjectionWarning(logger, CheckBasicHeuristics(text), source)
	return NeutralizeDelimiters(text)
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if strings.Contains(existing, value) || strings.Contains(value, existing) {
			return list
		}
	}
	return append(list, value)
}
