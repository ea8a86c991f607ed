package templates

import (
	"github.com/jonathan/lift/internal/fields"
	"github.com/jonathan/lift/internal/types"
)

// BuildResume assembles a resume draft from raw user input.
// Blank contact fields and empty sections are left unset so they are omitted from JSON,
// and no experience or education is invented beyond what the input contains.
func BuildResume(in ResumeInput) *types.ResumeDraft {
	draft := &types.ResumeDraft{
		Name:      fields.Clean(in.Name),
		Email:     fields.Clean(in.Email),
		Phone:     fields.Clean(in.Phone),
		Address:   fields.Clean(in.Address),
		LinkedIn:  fields.Clean(in.LinkedIn),
		Objective: BuildObjective(in.Objective),
		Skills:    ExpandSkills(in.Skills),
	}

	draft.Experience = fields.ExperienceEntries(in.Experience)
	draft.Education = fields.EducationEntries(in.Education)
	draft.Certifications = fields.Values(in.Certifications)

	return draft
}
