package templates

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummary_Empty(t *testing.T) {
	assert.Equal(t, "No content provided to elaborate on.", BuildSummary(NotesInput{Notes: "", SummaryLength: "long"}))
	assert.Equal(t, EmptySummary, BuildSummary(NotesInput{Notes: " \n\t "}))
}

func TestBuildSummary_LengthControlsDepth(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf("Point number %d about the topic", i))
	}
	notes := strings.Join(lines, "\n")

	tests := []struct {
		length   string
		expected int
	}{
		{SummaryShort, 3},
		{SummaryMedium, 5},
		{"", 5},
		{"unknown", 5},
		{SummaryLong, 8},
	}

	for _, tt := range tests {
		t.Run(tt.length, func(t *testing.T) {
			summary := BuildSummary(NotesInput{Notes: notes, SummaryLength: tt.length})
			assert.Len(t, strings.Split(summary, "\n\n"), tt.expected)
		})
	}
}

func TestBuildSummary_Elaborations(t *testing.T) {
	summary := BuildSummary(NotesInput{Notes: "- Photosynthesis happens in leaves\n2. The quadratic formula solves equations\nThe water cycle repeats\nRome was founded long ago."})

	paragraphs := strings.Split(summary, "\n\n")
	require.Len(t, paragraphs, 4)
	assert.True(t, strings.HasPrefix(paragraphs[0], "Photosynthesis happens in leaves. "))
	assert.Contains(t, paragraphs[0], "plants capture light energy")
	assert.True(t, strings.HasPrefix(paragraphs[1], "The quadratic formula solves equations. "))
	assert.Contains(t, paragraphs[1], "written mathematically")
	assert.Contains(t, paragraphs[2], "sequence of stages")
	assert.Equal(t, "Rome was founded long ago. "+genericElaboration, paragraphs[3])
}

func TestBuildSummary_Deterministic(t *testing.T) {
	in := NotesInput{Notes: "Cells divide by mitosis\nDNA carries genes"}
	assert.Equal(t, BuildSummary(in), BuildSummary(in))
}
