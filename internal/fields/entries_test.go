package fields

import (
	"testing"

	"github.com/jonathan/lift/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienceLine_SeparatorPriority(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected types.ExperienceEntry
	}{
		{
			name:     "pipe wins over comma",
			line:     "Engineer | Acme, Inc | 2019-2021 | Built APIs",
			expected: types.ExperienceEntry{Title: "Engineer", Company: "Acme, Inc", Dates: "2019-2021", Details: "Built APIs"},
		},
		{
			name:     "comma",
			line:     "Barista, Blue Bottle, 2018",
			expected: types.ExperienceEntry{Title: "Barista", Company: "Blue Bottle", Dates: "2018"},
		},
		{
			name:     "comma overflow joins details",
			line:     "Analyst, Initech, 2020, Built reports, Led reviews",
			expected: types.ExperienceEntry{Title: "Analyst", Company: "Initech", Dates: "2020", Details: "Built reports, Led reviews"},
		},
		{
			name:     "spaced dash keeps date hyphens",
			line:     "Intern - Globex - 2017-2018",
			expected: types.ExperienceEntry{Title: "Intern", Company: "Globex", Dates: "2017-2018"},
		},
		{
			name:     "whole line as title",
			line:     "Freelance photographer",
			expected: types.ExperienceEntry{Title: "Freelance photographer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseExperienceLine(tt.line))
		})
	}
}

func TestParseEducationLine(t *testing.T) {
	assert.Equal(t,
		types.EducationEntry{Degree: "BSc Computer Science", School: "MIT", Dates: "2015-2019"},
		ParseEducationLine("BSc Computer Science | MIT | 2015-2019"))
	assert.Equal(t,
		types.EducationEntry{Degree: "High School Diploma"},
		ParseEducationLine("High School Diploma"))
}

func TestExperienceFromObject(t *testing.T) {
	entry := ExperienceFromObject(map[string]any{
		"position":    map[string]any{"title": "Lead Engineer"},
		"employer":    "Acme",
		"startDate":   "2020",
		"description": []any{"Shipped v2", "Hired team"},
	})

	assert.Equal(t, "Lead Engineer", entry.Title)
	assert.Equal(t, "Acme", entry.Company)
	assert.Equal(t, "2020 - Present", entry.Dates)
	assert.Equal(t, "Shipped v2, Hired team", entry.Details)
}

func TestEducationFromObject(t *testing.T) {
	entry := EducationFromObject(map[string]any{"degree": "MBA", "institution": "Wharton", "year": float64(2012)})
	assert.Equal(t, types.EducationEntry{Degree: "MBA", School: "Wharton", Dates: "2012"}, entry)
}

func TestExperienceEntries_MixedInput(t *testing.T) {
	entries := ExperienceEntries(types.ItemList(
		"Engineer | Acme | 2019",
		map[string]any{"title": "Manager", "company": "Globex"},
		map[string]any{"title": "N/A"},
	))

	require.Len(t, entries, 2)
	assert.Equal(t, "Engineer", entries[0].Title)
	assert.Equal(t, "Manager", entries[1].Title)
}

func TestEducationEntries_Text(t *testing.T) {
	entries := EducationEntries(types.TextList("BA | Yale | 2010\n\nMA | Oxford | 2012"))
	require.Len(t, entries, 2)
	assert.Equal(t, "Oxford", entries[1].School)
}

func TestEntriesEmptyInput(t *testing.T) {
	assert.Empty(t, ExperienceEntries(types.TextList("  ")))
	assert.Empty(t, EducationEntries(types.FlexList{}))
}
