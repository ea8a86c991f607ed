package templates

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/lift/internal/types"
)

func TestExpandSkills_Baseline(t *testing.T) {
	skills := ExpandSkills(types.FlexList{})

	assert.Equal(t, append(append([]string{}, baselineSkills...), topUpSkills...), skills)
}

func TestExpandSkills_Lookup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"exact match is case-insensitive", "SQL", "Joins"},
		{"partial match", "Advanced Python", "Pandas"},
		{"soft category", "soft skills", "Empathy"},
		{"data category", "data wrangling", "Data Visualization"},
		{"universal bundle", "Juggling", "Adaptability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := ExpandSkills(types.FlexList{Text: tt.input})
			assert.Equal(t, tt.input, skills[0])
			assert.Contains(t, skills, tt.expected)
		})
	}
}

func TestExpandSkills_DedupIsCaseSensitive(t *testing.T) {
	skills := ExpandSkills(types.FlexList{Items: []any{"Python", " Python ", "python"}})

	count := func(s string) int {
		n := 0
		for _, skill := range skills {
			if skill == s {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count("Python"))
	assert.Equal(t, 1, count("python"))
	assert.Equal(t, 1, count("Pandas"))
}

func TestExpandSkills_Cap(t *testing.T) {
	var input []string
	for i := 0; i < 30; i++ {
		input = append(input, fmt.Sprintf("Skill %d", i))
	}

	skills := ExpandSkills(types.FlexList{Text: strings.Join(input, ", ")})
	assert.Len(t, skills, MaxSkills)
	assert.Equal(t, "Skill 0", skills[0])
}

func TestExpandSkills_ShortKeysNeverMatchPartially(t *testing.T) {
	skills := ExpandSkills(types.FlexList{Text: "Golf"})
	assert.NotContains(t, skills, "Concurrency")
}
