package fields

import (
	"regexp"
	"strings"

	"github.com/jonathan/lift/internal/types"
)

var dashSeparator = regexp.MustCompile(`\s+[-–—]\s+`)

// SplitEntry splits a resume line using the first separator present, in priority
// order: pipe, comma, spaced dash. A line with no separator is returned whole.
// The returned joiner is used to re-join any overflow fields.
func SplitEntry(line string) (parts []string, joiner string) {
	line = strings.TrimSpace(line)
	var raw []string
	switch {
	case strings.Contains(line, "|"):
		raw, joiner = strings.Split(line, "|"), " | "
	case strings.Contains(line, ","):
		raw, joiner = strings.Split(line, ","), ", "
	case dashSeparator.MatchString(line):
		raw, joiner = dashSeparator.Split(line, -1), " - "
	default:
		raw, joiner = []string{line}, " "
	}

	parts = make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, Clean(p))
	}
	return parts, joiner
}

// ParseExperienceLine maps "title | company | dates | details..." onto an ExperienceEntry.
func ParseExperienceLine(line string) types.ExperienceEntry {
	parts, joiner := SplitEntry(line)
	entry := types.ExperienceEntry{Title: at(parts, 0), Company: at(parts, 1), Dates: at(parts, 2)}
	if len(parts) > 3 {
		entry.Details = joinNonEmpty(parts[3:], joiner)
	}
	return entry
}

// ParseEducationLine maps "degree | school | dates" onto an EducationEntry.
// Fields past the third are appended to the dates.
func ParseEducationLine(line string) types.EducationEntry {
	parts, joiner := SplitEntry(line)
	entry := types.EducationEntry{Degree: at(parts, 0), School: at(parts, 1), Dates: at(parts, 2)}
	if len(parts) > 3 {
		entry.Dates = joinNonEmpty(parts[2:], joiner)
	}
	return entry
}

// ExperienceFromObject reads a pre-structured experience object.
func ExperienceFromObject(obj map[string]any) types.ExperienceEntry {
	entry := types.ExperienceEntry{
		Title:   FirstOf(obj, "title", "position", "role", "jobTitle"),
		Company: FirstOf(obj, "company", "employer", "organization"),
		Dates:   FirstOf(obj, "dates", "date", "duration", "period"),
		Details: FirstOf(obj, "details", "description", "responsibilities", "bullets", "summary"),
	}
	if entry.Dates == "" {
		entry.Dates = dateRange(FirstOf(obj, "start", "startDate"), FirstOf(obj, "end", "endDate"))
	}
	return entry
}

// EducationFromObject reads a pre-structured education object.
func EducationFromObject(obj map[string]any) types.EducationEntry {
	entry := types.EducationEntry{
		Degree: FirstOf(obj, "degree", "qualification", "program", "field"),
		School: FirstOf(obj, "school", "institution", "university", "college"),
		Dates:  FirstOf(obj, "dates", "date", "year", "graduation", "period"),
	}
	if entry.Dates == "" {
		entry.Dates = dateRange(FirstOf(obj, "start", "startDate"), FirstOf(obj, "end", "endDate"))
	}
	return entry
}

// ExperienceEntries parses every line and object of a FlexList, dropping empty entries.
func ExperienceEntries(f types.FlexList) []types.ExperienceEntry {
	var entries []types.ExperienceEntry
	for _, line := range Lines(f) {
		if e := ParseExperienceLine(line); !ExperienceEmpty(e) {
			entries = append(entries, e)
		}
	}
	for _, obj := range Objects(f) {
		if e := ExperienceFromObject(obj); !ExperienceEmpty(e) {
			entries = append(entries, e)
		}
	}
	return entries
}

// EducationEntries parses every line and object of a FlexList, dropping empty entries.
func EducationEntries(f types.FlexList) []types.EducationEntry {
	var entries []types.EducationEntry
	for _, line := range Lines(f) {
		if e := ParseEducationLine(line); !EducationEmpty(e) {
			entries = append(entries, e)
		}
	}
	for _, obj := range Objects(f) {
		if e := EducationFromObject(obj); !EducationEmpty(e) {
			entries = append(entries, e)
		}
	}
	return entries
}

// ExperienceEmpty reports whether every field of e is blank.
func ExperienceEmpty(e types.ExperienceEntry) bool {
	return Blank(e.Title) && Blank(e.Company) && Blank(e.Dates) && Blank(e.Details)
}

// EducationEmpty reports whether every field of e is blank.
func EducationEmpty(e types.EducationEntry) bool {
	return Blank(e.Degree) && Blank(e.School) && Blank(e.Dates)
}

func at(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func joinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func dateRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start + " - Present"
	default:
		return end
	}
}
