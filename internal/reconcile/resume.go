package reconcile

import (
	"errors"

	"github.com/jonathan/lift/internal/fields"
	"github.com/jonathan/lift/internal/schemas"
	"github.com/jonathan/lift/internal/templates"
	"github.com/jonathan/lift/internal/types"
)

// Resume normalizes provider content into a ResumeDraft.
// Blank fields are cleared so they are omitted from JSON. Schema violations and
// unsupported entries are reported but do not reject the draft.
func Resume(content string, in templates.ResumeInput) (*types.ResumeDraft, Report, error) {
	obj, err := decodeObject(content)
	if err != nil {
		return nil, Report{}, err
	}
	if nested, ok := obj["resume"].(map[string]any); ok {
		obj = nested
	}

	draft := &types.ResumeDraft{
		Name:      fields.FirstOf(obj, "name", "fullName"),
		Email:     fields.FirstOf(obj, "email"),
		Phone:     fields.FirstOf(obj, "phone", "phoneNumber"),
		Address:   fields.FirstOf(obj, "address", "location"),
		LinkedIn:  fields.FirstOf(obj, "linkedin", "linkedIn", "linkedinUrl"),
		Objective: fields.FirstOf(obj, "objective", "summary"),
	}
	if draft.Name == "" {
		draft.Name = fields.Clean(in.Name)
	}

	draft.Experience = fields.ExperienceEntries(flex(obj["experience"]))
	draft.Education = fields.EducationEntries(flex(obj["education"]))
	draft.Certifications = fields.Values(flex(obj["certifications"]))

	draft.Skills = fields.Values(flex(obj["skills"]))
	if len(draft.Skills) == 0 {
		draft.Skills = templates.ExpandSkills(in.Skills)
	}

	report := CheckFabrication(draft, in)
	if err := schemas.Validate(schemas.Resume, draft); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			for _, fe := range validationErr.Errors {
				report.SchemaErrors = append(report.SchemaErrors, fe.Field+": "+fe.Message)
			}
		} else {
			report.SchemaErrors = append(report.SchemaErrors, err.Error())
		}
	}

	return draft, report, nil
}
