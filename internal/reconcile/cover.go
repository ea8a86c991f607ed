package reconcile

import (
	"regexp"
	"strings"

	"github.com/jonathan/lift/internal/fields"
	"github.com/jonathan/lift/internal/templates"
	"github.com/jonathan/lift/internal/types"
)

const coverParagraphs = 2

var paragraphBreakRe = regexp.MustCompile(`\n\s*\n`)

// Cover normalizes provider content into a two-paragraph cover letter.
// Missing paragraphs are filled from the template letter; extra paragraphs are
// folded into the second one.
func Cover(content string, in templates.CoverInput) (*types.CoverLetterDraft, error) {
	obj, err := decodeObject(content)
	if err != nil {
		return nil, err
	}
	if nested, ok := obj["coverLetter"].(map[string]any); ok {
		obj = nested
	}

	raw, ok := obj["paragraphs"]
	if !ok {
		raw = firstPresent(obj, "body", "content", "text", "letter")
	}
	paragraphs := coverParagraphList(raw)
	if !anyNonBlank(paragraphs) {
		return nil, ErrEmptyResult
	}

	draft := &types.CoverLetterDraft{
		Name:       fields.FirstOf(obj, "name"),
		Recipient:  fields.FirstOf(obj, "recipient", "company"),
		Position:   fields.FirstOf(obj, "position", "role", "title"),
		Paragraphs: NormalizeParagraphs(paragraphs, templates.BuildCover(in).Paragraphs),
	}
	if draft.Name == "" {
		draft.Name = fields.Clean(in.Name)
	}
	if draft.Recipient == "" {
		draft.Recipient = fields.Clean(in.Recipient)
	}
	if draft.Position == "" {
		draft.Position = fields.Clean(in.Position)
	}
	return draft, nil
}

// NormalizeParagraphs returns exactly two paragraphs, taking gaps from fallback
func NormalizeParagraphs(paragraphs, fallback []string) []string {
	var kept []string
	for _, p := range paragraphs {
		if p = fields.Clean(p); p != "" {
			kept = append(kept, p)
		}
	}

	if len(kept) > coverParagraphs {
		kept = []string{kept[0], strings.Join(kept[1:], "\n\n")}
	}
	for i := len(kept); i < coverParagraphs; i++ {
		if i < len(fallback) {
			kept = append(kept, fallback[i])
		} else {
			kept = append(kept, "")
		}
	}
	return kept
}

// coverParagraphList accepts a string (split on blank lines), an array, or an object
func coverParagraphList(v any) []string {
	switch val := v.(type) {
	case string:
		return paragraphBreakRe.Split(strings.TrimSpace(val), -1)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fields.Unwrap(item))
		}
		return out
	case map[string]any:
		return []string{fields.Unwrap(val)}
	default:
		return nil
	}
}

func firstPresent(obj map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			return v
		}
	}
	return nil
}

func anyNonBlank(values []string) bool {
	for _, v := range values {
		if !fields.Blank(v) {
			return true
		}
	}
	return false
}
