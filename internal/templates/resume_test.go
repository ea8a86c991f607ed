package templates

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lift/internal/types"
)

func TestBuildResume_OmitsBlankContactFields(t *testing.T) {
	draft := BuildResume(ResumeInput{Name: "X", Email: "", Phone: "   ", LinkedIn: "N/A"})

	data, err := json.Marshal(draft)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "X", decoded["name"])
	for _, key := range []string{"email", "phone", "address", "linkedin", "objective", "experience", "education", "certifications"} {
		assert.NotContains(t, decoded, key)
	}
	assert.Contains(t, decoded, "skills")
}

func TestBuildResume_KeepsPresentContactFields(t *testing.T) {
	draft := BuildResume(ResumeInput{Name: "X", Email: "a@b.com"})

	data, err := json.Marshal(draft)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "a@b.com", decoded["email"])
}

func TestBuildResume_LeadershipScenario(t *testing.T) {
	draft := BuildResume(ResumeInput{
		Name:      "Jane Doe",
		Objective: "I want to lead engineering teams",
		Skills:    types.FlexList{Text: "Python, SQL"},
	})

	assert.Equal(t, ThemeLeadership, ClassifyObjective("I want to lead engineering teams"))
	assert.Contains(t, draft.Objective, "leader")
	assert.Contains(t, draft.Objective, "teams")

	for _, skill := range []string{"Python", "SQL", "Data Analysis", "Automation", "Joins", "Query optimization", "Schema design"} {
		assert.Contains(t, draft.Skills, skill)
	}
	assert.GreaterOrEqual(t, len(draft.Skills), 8)
	assert.Equal(t, "Python", draft.Skills[0])
}

func TestBuildResume_SingleSkillExpands(t *testing.T) {
	draft := BuildResume(ResumeInput{Name: "X", Skills: types.FlexList{Text: "Python"}})

	assert.GreaterOrEqual(t, len(draft.Skills), 5)
	assert.Contains(t, draft.Skills, "Python")
}

func TestBuildResume_ParsesEntries(t *testing.T) {
	draft := BuildResume(ResumeInput{
		Name:           "X",
		Experience:     types.FlexList{Text: "Software Engineer | Acme | 2020-2022 | Built APIs\nIntern, Globex, 2019"},
		Education:      types.FlexList{Text: "BSc Computer Science - State University - 2019"},
		Certifications: types.FlexList{Items: []any{"AWS Solutions Architect", " "}},
	})

	require.Len(t, draft.Experience, 2)
	assert.Equal(t, types.ExperienceEntry{Title: "Software Engineer", Company: "Acme", Dates: "2020-2022", Details: "Built APIs"}, draft.Experience[0])
	assert.Equal(t, types.ExperienceEntry{Title: "Intern", Company: "Globex", Dates: "2019"}, draft.Experience[1])

	require.Len(t, draft.Education, 1)
	assert.Equal(t, types.EducationEntry{Degree: "BSc Computer Science", School: "State University", Dates: "2019"}, draft.Education[0])

	assert.Equal(t, []string{"AWS Solutions Architect"}, draft.Certifications)
}

func TestBuildResume_Deterministic(t *testing.T) {
	in := ResumeInput{
		Name:      "Sam",
		Objective: "Looking to grow as a data analyst",
		Skills:    types.FlexList{Text: "Excel, storytelling, soft skills"},
	}

	first := BuildResume(in)
	second := BuildResume(in)
	assert.Equal(t, first, second)
	assert.Equal(t, ThemeData, ClassifyObjective(in.Objective))
}
