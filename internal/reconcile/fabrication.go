package reconcile

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/lift/internal/fields"
	"github.com/jonathan/lift/internal/templates"
	"github.com/jonathan/lift/internal/types"
)

// Resume sections checked for fabricated entries
const (
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionCertifications = "certifications"
)

// Finding is a generated entry with no counterpart in the user's input
type Finding struct {
	Section string `json:"section"`
	Value   string `json:"value"`
}

// Report collects unsupported entries. It never causes a resume to be rejected.
type Report struct {
	Unsupported  []Finding `json:"unsupported,omitempty"`
	SchemaErrors []string  `json:"schemaErrors,omitempty"`
}

// Clean reports whether nothing unsupported or invalid was found
func (r Report) Clean() bool {
	return len(r.Unsupported) == 0 && len(r.SchemaErrors) == 0
}

// minEvidenceLen ignores values too short to match meaningfully
const minEvidenceLen = 2

// evidence holds the lowercase tokens and raw text a user actually supplied
type evidence struct {
	tokens []string
	raw    string
}

func newEvidence(raw string, tokens ...string) *evidence {
	e := &evidence{raw: strings.ToLower(raw)}
	for _, t := range tokens {
		if t = strings.ToLower(strings.TrimSpace(t)); len(t) >= minEvidenceLen {
			e.tokens = append(e.tokens, t)
		}
	}
	return e
}

// supports reports whether any of values overlaps a supplied token or appears in the raw input
func (e *evidence) supports(values ...string) bool {
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if len(v) < minEvidenceLen {
			continue
		}
		if e.raw != "" && strings.Contains(e.raw, v) {
			return true
		}
		for _, t := range e.tokens {
			if strings.Contains(t, v) || strings.Contains(v, t) {
				return true
			}
		}
	}
	return false
}

// CheckFabrication compares the draft's experience, education and certifications
// against what the user supplied. Mismatches are collected, not removed.
func CheckFabrication(draft *types.ResumeDraft, in templates.ResumeInput) Report {
	var report Report
	if draft == nil {
		return report
	}

	var expTokens []string
	for _, e := range fields.ExperienceEntries(in.Experience) {
		expTokens = append(expTokens, e.Title, e.Company)
	}
	experience := newEvidence(flatten(in.Experience), expTokens...)
	for _, e := range draft.Experience {
		if !experience.supports(e.Company, e.Title) {
			report.Unsupported = append(report.Unsupported, Finding{Section: SectionExperience, Value: joinEntry(e.Title, e.Company)})
		}
	}

	var eduTokens []string
	for _, e := range fields.EducationEntries(in.Education) {
		eduTokens = append(eduTokens, e.Degree, e.School)
	}
	education := newEvidence(flatten(in.Education), eduTokens...)
	for _, e := range draft.Education {
		if !education.supports(e.School, e.Degree) {
			report.Unsupported = append(report.Unsupported, Finding{Section: SectionEducation, Value: joinEntry(e.Degree, e.School)})
		}
	}

	certifications := newEvidence(flatten(in.Certifications), fields.Values(in.Certifications)...)
	for _, c := range draft.Certifications {
		if !certifications.supports(c) {
			report.Unsupported = append(report.Unsupported, Finding{Section: SectionCertifications, Value: c})
		}
	}

	return report
}

// flatten returns the raw input as searchable text; structured items keep every field
func flatten(f types.FlexList) string {
	if f.Items != nil {
		data, err := json.Marshal(f.Items)
		if err != nil {
			return fields.Unwrap(f.Items)
		}
		return string(data)
	}
	return f.Text
}

func joinEntry(a, b string) string {
	switch {
	case a != "" && b != "":
		return a + " @ " + b
	case a != "":
		return a
	default:
		return b
	}
}
