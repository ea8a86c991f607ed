package pipeline

import (
	"context"
	"log/slog"

	"github.com/jonathan/lift/internal/completion"
	"github.com/jonathan/lift/internal/prompts"
	"github.com/jonathan/lift/internal/reconcile"
	"github.com/jonathan/lift/internal/templates"
	"github.com/jonathan/lift/internal/types"
)

// ResumeResult is a generated resume and where it came from
type ResumeResult struct {
	Provider string             `json:"provider"`
	Resume   *types.ResumeDraft `json:"resume"`
	Report   reconcile.Report   `json:"-"`
}

// CoverResult is a generated cover letter and where it came from
type CoverResult struct {
	Provider    string                  `json:"provider"`
	CoverLetter *types.CoverLetterDraft `json:"coverLetter"`
}

// Resume generates a resume. Provider output that cannot be reconciled is replaced
// by the template resume; unsupported entries are logged but kept.
func (g *Generator) Resume(ctx context.Context, in templates.ResumeInput, prefs types.Preferences) (*ResumeResult, error) {
	prefs = prefs.WithDefaults()
	req := g.request(ctx, prompts.CareerFile, "resume", map[string]string{
		"Tone":     prefs.AITone,
		"Template": prefs.ResumeTemplate,
		"Input":    inputJSON(in),
	}, completion.Request{
		Temperature: careerTemperature,
		MaxTokens:   careerMaxTokens,
		Kind:        completion.KindJSON,
		Context:     completion.Bundle{Type: completion.TypeResume, Resume: &in},
	})

	result, err := g.orchestrator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if result.FromTemplate() {
		draft, err := decodeTemplate[types.ResumeDraft](result.Content)
		if err != nil {
			return nil, err
		}
		return &ResumeResult{Provider: result.Provider, Resume: &draft}, nil
	}

	draft, report, err := reconcile.Resume(result.Content, in)
	if err != nil {
		g.warnFallback(ctx, string(completion.TypeResume), result.Provider, err)
		return &ResumeResult{Provider: completion.TemplateProvider, Resume: templates.BuildResume(in)}, nil
	}

	if !report.Clean() {
		g.log(ctx).Warn("resume contains entries not found in user input",
			slog.String("provider", result.Provider),
			slog.Any("unsupported", report.Unsupported),
			slog.Any("schema_errors", report.SchemaErrors),
		)
	}
	return &ResumeResult{Provider: result.Provider, Resume: draft, Report: report}, nil
}

// Cover generates a cover letter with exactly two paragraphs.
func (g *Generator) Cover(ctx context.Context, in templates.CoverInput, prefs types.Preferences) (*CoverResult, error) {
	prefs = prefs.WithDefaults()
	req := g.request(ctx, prompts.CareerFile, "cover", map[string]string{
		"Tone":     prefs.AITone,
		"Template": prefs.CoverLetterTemplate,
		"Input":    inputJSON(in),
	}, completion.Request{
		Temperature: careerTemperature,
		MaxTokens:   careerMaxTokens,
		Kind:        completion.KindJSON,
		Context:     completion.Bundle{Type: completion.TypeCover, Cover: &in},
	})

	result, err := g.orchestrator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if result.FromTemplate() {
		letter, err := decodeTemplate[types.CoverLetterDraft](result.Content)
		if err != nil {
			return nil, err
		}
		return &CoverResult{Provider: result.Provider, CoverLetter: &letter}, nil
	}

	letter, err := reconcile.Cover(result.Content, in)
	if err != nil {
		g.warnFallback(ctx, string(completion.TypeCover), result.Provider, err)
		return &CoverResult{Provider: completion.TemplateProvider, CoverLetter: templates.BuildCover(in)}, nil
	}
	return &CoverResult{Provider: result.Provider, CoverLetter: letter}, nil
}
