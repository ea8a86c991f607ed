package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/lift/internal/completion"
	"github.com/jonathan/lift/internal/prompts"
	"github.com/jonathan/lift/internal/reconcile"
	"github.com/jonathan/lift/internal/templates"
	"github.com/jonathan/lift/internal/types"
)

// NotesProviders names the provider behind each part of a notes result
type NotesProviders struct {
	Summary    string `json:"summary"`
	Flashcards string `json:"flashcards"`
}

// NotesResult is a study summary plus flashcards
type NotesResult struct {
	Provider   NotesProviders    `json:"provider"`
	Summary    string            `json:"summary"`
	Flashcards []types.FlashCard `json:"flashcards"`
}

// QuizResult is a generated quiz and where it came from
type QuizResult struct {
	Provider string           `json:"provider"`
	Quiz     []types.QuizItem `json:"quiz"`
}

type summaryPart struct {
	provider string
	summary  string
}

type cardsPart struct {
	provider string
	cards    []types.FlashCard
}

// Notes generates a summary and flashcards concurrently. Both parts share the
// notes timeout; a part still missing when it expires is built from templates.
func (g *Generator) Notes(ctx context.Context, in templates.NotesInput, prefs types.Preferences) (*NotesResult, error) {
	in = notesInput(in, prefs)

	notesCtx, cancel := context.WithTimeout(ctx, g.notesTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		summary *summaryPart
		cards   *cardsPart
	)

	group, groupCtx := errgroup.WithContext(notesCtx)
	group.Go(func() error {
		part, err := g.summary(groupCtx, in, prefs)
		if err != nil {
			return err
		}
		mu.Lock()
		summary = part
		mu.Unlock()
		return nil
	})
	group.Go(func() error {
		part, err := g.flashcards(groupCtx, in, prefs)
		if err != nil {
			return err
		}
		mu.Lock()
		cards = part
		mu.Unlock()
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- group.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return nil, err
		}
	case <-notesCtx.Done():
		g.log(ctx).Warn("notes generation timed out, filling missing parts from templates",
			slog.Duration("timeout", g.notesTimeout),
		)
	}

	mu.Lock()
	defer mu.Unlock()

	if summary == nil {
		summary = &summaryPart{provider: completion.TemplateProvider, summary: templates.BuildSummary(in)}
	}
	if cards == nil {
		cards = &cardsPart{provider: completion.TemplateProvider, cards: templates.BuildFlashcards(in, g.rand)}
	}

	return &NotesResult{
		Provider:   NotesProviders{Summary: summary.provider, Flashcards: cards.provider},
		Summary:    summary.summary,
		Flashcards: cards.cards,
	}, nil
}

func (g *Generator) summary(ctx context.Context, in templates.NotesInput, prefs types.Preferences) (*summaryPart, error) {
	req := g.request(ctx, prompts.NotesFile, "summary", map[string]string{
		"Tone":   prefs.AITone,
		"Length": in.SummaryLength,
		"Input":  in.Notes,
	}, completion.Request{
		Temperature: notesTemperature,
		MaxTokens:   summaryMaxTokens,
		Kind:        completion.KindText,
		Context:     completion.Bundle{Type: completion.TypeSummary, Notes: &in},
	})

	result, err := g.orchestrator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return &summaryPart{provider: result.Provider, summary: strings.TrimSpace(result.Content)}, nil
}

func (g *Generator) flashcards(ctx context.Context, in templates.NotesInput, _ types.Preferences) (*cardsPart, error) {
	req := g.request(ctx, prompts.NotesFile, "flashcards", map[string]string{
		"Difficulty": in.FlashcardDifficulty,
		"Input":      in.Notes,
	}, completion.Request{
		Temperature: notesTemperature,
		MaxTokens:   cardsMaxTokens,
		Kind:        completion.KindJSON,
		Context:     completion.Bundle{Type: completion.TypeFlashcards, Notes: &in},
	})

	result, err := g.orchestrator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if result.FromTemplate() {
		cards, err := decodeTemplate[[]types.FlashCard](result.Content)
		if err != nil {
			return nil, err
		}
		return &cardsPart{provider: result.Provider, cards: cards}, nil
	}

	cards, err := reconcile.Flashcards(result.Content)
	if err != nil {
		g.warnFallback(ctx, string(completion.TypeFlashcards), result.Provider, err)
		return &cardsPart{provider: completion.TemplateProvider, cards: templates.BuildFlashcards(in, g.rand)}, nil
	}
	return &cardsPart{provider: result.Provider, cards: cards}, nil
}

// Quiz generates up to ten multiple-choice questions.
func (g *Generator) Quiz(ctx context.Context, in templates.NotesInput, prefs types.Preferences) (*QuizResult, error) {
	in = notesInput(in, prefs)
	req := g.request(ctx, prompts.NotesFile, "quiz", map[string]string{
		"Input": in.Notes,
	}, completion.Request{
		Temperature: notesTemperature,
		MaxTokens:   quizMaxTokens,
		Kind:        completion.KindJSON,
		Context:     completion.Bundle{Type: completion.TypeQuiz, Notes: &in},
	})

	result, err := g.orchestrator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if result.FromTemplate() {
		quiz, err := decodeTemplate[[]types.QuizItem](result.Content)
		if err != nil {
			return nil, err
		}
		return &QuizResult{Provider: result.Provider, Quiz: quiz}, nil
	}

	quiz, err := reconcile.Quiz(result.Content)
	if err != nil {
		g.warnFallback(ctx, string(completion.TypeQuiz), result.Provider, err)
		return &QuizResult{Provider: completion.TemplateProvider, Quiz: templates.BuildQuiz(in, g.rand)}, nil
	}
	return &QuizResult{Provider: result.Provider, Quiz: quiz}, nil
}

// notesInput fills the notes preferences the request did not set
func notesInput(in templates.NotesInput, prefs types.Preferences) templates.NotesInput {
	prefs = prefs.WithDefaults()
	if strings.TrimSpace(in.SummaryLength) == "" {
		in.SummaryLength = prefs.SummaryLength
	}
	if strings.TrimSpace(in.FlashcardDifficulty) == "" {
		in.FlashcardDifficulty = prefs.FlashcardDifficulty
	}
	return in
}
