package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/lift/internal/llm"
	"github.com/jonathan/lift/internal/observability"
	"github.com/jonathan/lift/internal/templates"
)

// DefaultTimeout bounds a single provider call
const DefaultTimeout = 6 * time.Second

var errInvalidJSON = errors.New("invalid JSON")

// Options configures an Orchestrator
type Options struct {
	// Timeout bounds each provider call; zero means DefaultTimeout
	Timeout time.Duration
	// Model overrides the provider's default model
	Model  string
	Rand   templates.Rand
	Logger *slog.Logger
}

// Orchestrator attempts one provider call per request and falls back to templates
type Orchestrator struct {
	resolver *llm.Resolver
	timeout  time.Duration
	model    string
	rand     templates.Rand
	logger   *slog.Logger
}

// New creates an Orchestrator. A nil resolver always uses templates.
func New(resolver *llm.Resolver, opts Options) *Orchestrator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Rand == nil {
		opts.Rand = templates.DefaultRand()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Orchestrator{
		resolver: resolver,
		timeout:  opts.Timeout,
		model:    opts.Model,
		rand:     opts.Rand,
		logger:   opts.Logger,
	}
}

// Generate returns provider content when the provider answers in time with usable
// content, otherwise the template result for req.Context.Type. The only error is
// *UnsupportedTypeError, returned when the provider failed and no template exists.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if result, ok := o.tryProvider(ctx, req); ok {
		return result, nil
	}
	return o.Fallback(req.Context)
}

func (o *Orchestrator) tryProvider(ctx context.Context, req Request) (*Result, bool) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, false
	}

	provider, ok := o.resolver.Client(ctx)
	if !ok {
		return nil, false
	}

	logger := observability.LoggerFromContext(ctx, o.logger).With(
		slog.String("provider", provider.Name()),
		slog.String("type", string(req.Context.Type)),
	)

	resp, err := o.call(ctx, provider, req)
	if err != nil {
		logger.Warn("provider completion failed", slog.String("error", err.Error()))
		return nil, false
	}

	content, ok := llm.FirstContent(resp)
	if !ok {
		logger.Warn("provider returned no content")
		return nil, false
	}

	if req.Kind == KindJSON {
		if err := checkJSON(content); err != nil {
			logger.Warn("provider returned invalid JSON", slog.String("error", err.Error()))
			return nil, false
		}
	}

	logger.Info("provider completion succeeded", slog.Int("content_length", len(content)))
	return &Result{Provider: provider.Name(), Content: content}, true
}

type callOutcome struct {
	resp *llm.Response
	err  error
}

// call races the provider against the timeout and the caller's context.
// The losing provider call is abandoned; its context is cancelled on return.
func (o *Orchestrator) call(ctx context.Context, provider llm.Provider, req Request) (*llm.Response, error) {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	llmReq := llm.Request{
		Model:       o.model,
		Messages:    llm.PromptMessages(req.System, req.Prompt),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSON:        req.Kind == KindJSON,
	}

	done := make(chan callOutcome, 1)
	go func() {
		resp, err := provider.Complete(callCtx, llmReq)
		done <- callOutcome{resp: resp, err: err}
	}()

	timer := time.NewTimer(o.timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.resp, out.err
	case <-timer.C:
		return nil, fmt.Errorf("provider timed out after %s", o.timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func checkJSON(content string) error {
	fragment, ok := llm.ExtractJSONFragment(content)
	if !ok {
		return fmt.Errorf("%w: no JSON object or array found", errInvalidJSON)
	}
	if !json.Valid([]byte(fragment)) {
		return fmt.Errorf("%w: fragment does not parse", errInvalidJSON)
	}
	return nil
}

// Fallback renders the template result for the bundle's context type.
// Structured results are serialized to JSON; summaries are returned as prose.
func (o *Orchestrator) Fallback(bundle Bundle) (*Result, error) {
	var value any
	switch bundle.Type {
	case TypeResume:
		value = templates.BuildResume(deref(bundle.Resume))
	case TypeCover:
		value = templates.BuildCover(deref(bundle.Cover))
	case TypeFlashcards:
		value = templates.BuildFlashcards(deref(bundle.Notes), o.rand)
	case TypeQuiz:
		value = templates.BuildQuiz(deref(bundle.Notes), o.rand)
	case TypeSummary:
		return &Result{Provider: TemplateProvider, Content: templates.BuildSummary(deref(bundle.Notes))}, nil
	default:
		return nil, &UnsupportedTypeError{Type: bundle.Type}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s template: %w", bundle.Type, err)
	}
	return &Result{Provider: TemplateProvider, Content: string(data)}, nil
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
