// Package pipeline runs the Lift generation flows: build the prompt, ask the
// completion orchestrator, reconcile provider output, and fall back to templates
// whenever provider output cannot be used.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/lift/internal/completion"
	"github.com/jonathan/lift/internal/observability"
	"github.com/jonathan/lift/internal/prompts"
	"github.com/jonathan/lift/internal/templates"
	"github.com/jonathan/lift/internal/validation"
)

// DefaultNotesTimeout bounds a whole notes request (summary and flashcards together)
const DefaultNotesTimeout = 25 * time.Second

// Sampling settings per flow
const (
	careerTemperature = 0.4
	careerMaxTokens   = 1200
	notesTemperature  = 0.5
	summaryMaxTokens  = 900
	cardsMaxTokens    = 1500
	quizMaxTokens     = 1500
)

// Options configures a Generator
type Options struct {
	NotesTimeout time.Duration
	Rand         templates.Rand
	Logger       *slog.Logger
}

// Generator runs the career and notes flows over a completion orchestrator
type Generator struct {
	orchestrator *completion.Orchestrator
	notesTimeout time.Duration
	rand         templates.Rand
	logger       *slog.Logger
}

// New creates a Generator
func New(orchestrator *completion.Orchestrator, opts Options) *Generator {
	if opts.NotesTimeout <= 0 {
		opts.NotesTimeout = DefaultNotesTimeout
	}
	if opts.Rand == nil {
		opts.Rand = templates.DefaultRand()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Generator{
		orchestrator: orchestrator,
		notesTimeout: opts.NotesTimeout,
		rand:         opts.Rand,
		logger:       opts.Logger,
	}
}

func (g *Generator) log(ctx context.Context) *slog.Logger {
	return observability.LoggerFromContext(ctx, g.logger)
}

// request renders the prompt pair for kind and assembles a completion request.
// A prompt that fails to render leaves the prompt empty, which sends the request
// straight to the template engine.
func (g *Generator) request(ctx context.Context, file, kind string, data map[string]string, base completion.Request) completion.Request {
	data["Input"] = validation.Guard(g.log(ctx), data["Input"], kind)

	pair, err := prompts.Render(file, kind, data)
	if err != nil {
		g.log(ctx).Error("failed to render prompt", slog.String("kind", kind), slog.String("error", err.Error()))
		return base
	}
	base.System = pair.System
	base.Prompt = pair.User
	return base
}

// warnFallback records that provider output was discarded in favor of the template
func (g *Generator) warnFallback(ctx context.Context, kind, provider string, err error) {
	g.log(ctx).Warn("provider output failed reconciliation, using template",
		slog.String("type", kind),
		slog.String("provider", provider),
		slog.String("error", err.Error()),
	)
}

// inputJSON renders structured user fields for a prompt
func inputJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}

// decodeTemplate decodes template engine output produced by the orchestrator
func decodeTemplate[T any](content string) (T, error) {
	var value T
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return value, fmt.Errorf("failed to decode template output: %w", err)
	}
	return value, nil
}
