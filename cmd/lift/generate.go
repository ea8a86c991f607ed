package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/lift/internal/completion"
	"github.com/jonathan/lift/internal/ingestion"
	"github.com/jonathan/lift/internal/llm"
	"github.com/jonathan/lift/internal/observability"
	"github.com/jonathan/lift/internal/pipeline"
	"github.com/jonathan/lift/internal/reconcile"
	"github.com/jonathan/lift/internal/templates"
	"github.com/jonathan/lift/internal/types"
)

// Generation kinds accepted by the generate command
const (
	kindResume     = "resume"
	kindCover      = "cover"
	kindSummary    = "summary"
	kindFlashcards = "flashcards"
	kindQuiz       = "quiz"
)

var generateKinds = []string{kindResume, kindCover, kindSummary, kindFlashcards, kindQuiz}

var (
	genInput      string
	genNotesFile  string
	genNotes      string
	genOutput     string
	genOffline    bool
	genVerbose    bool
	genSeed       uint64
	genTone       string
	genLength     string
	genDifficulty string
)

var generateCmd = &cobra.Command{
	Use:       "generate <resume|cover|summary|flashcards|quiz>",
	Short:     "Generate a document from the command line",
	Long:      "Run one generation flow and print its JSON result. Career documents read a JSON input file; notes flows read text, HTML or PDF notes.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: generateKinds,
	RunE:      runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genInput, "input", "i", "", "JSON file with resume or cover letter fields")
	generateCmd.Flags().StringVarP(&genNotesFile, "notes-file", "n", "", "Notes file (.txt, .md, .html or .pdf)")
	generateCmd.Flags().StringVar(&genNotes, "notes", "", "Notes text")
	generateCmd.Flags().StringVarP(&genOutput, "out", "o", "", "Write JSON to this file instead of stdout")
	generateCmd.Flags().BoolVar(&genOffline, "offline", false, "Skip the remote provider and use templates only")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print a readable summary instead of JSON")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "Seed for template shuffling (0 picks a random seed)")
	generateCmd.Flags().StringVar(&genTone, "tone", "", "Writing tone (default professional)")
	generateCmd.Flags().StringVar(&genLength, "length", "", "Summary length: short, medium or long")
	generateCmd.Flags().StringVar(&genDifficulty, "difficulty", "", "Flashcard difficulty: easy, medium or hard")

	generateCmd.MarkFlagsMutuallyExclusive("notes-file", "notes")
	rootCmd.AddCommand(generateCmd)
}

// generateRequest is everything one generate run needs
type generateRequest struct {
	Kind    string
	Career  careerInput
	Notes   templates.NotesInput
	Prefs   types.Preferences
	Verbose bool
}

// careerInput is the JSON file format read by --input
type careerInput struct {
	templates.ResumeInput
	Recipient  string `json:"recipient"`
	Position   string `json:"position"`
	Paragraphs string `json:"paragraphs"`
}

func (c careerInput) cover() templates.CoverInput {
	return templates.CoverInput{
		Name:       c.Name,
		Recipient:  c.Recipient,
		Position:   c.Position,
		Paragraphs: c.Paragraphs,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, closer, err := loadRuntime(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	req := generateRequest{
		Kind: args[0],
		Prefs: types.Preferences{
			AITone:              genTone,
			SummaryLength:       genLength,
			FlashcardDifficulty: genDifficulty,
		}.WithDefaults(),
		Verbose: genVerbose,
	}
	if err := loadGenerateInput(&req); err != nil {
		return err
	}

	var resolver *llm.Resolver
	if !genOffline {
		resolver = llm.NewResolver(cfg.LLMConfig(), logger)
	}
	var rand templates.Rand
	if genSeed != 0 {
		rand = templates.NewSeededRand(genSeed)
	}

	orchestrator := completion.New(resolver, completion.Options{
		Timeout: cfg.CompletionTimeout.Duration,
		Model:   cfg.Model,
		Rand:    rand,
		Logger:  logger,
	})
	generator := pipeline.New(orchestrator, pipeline.Options{
		NotesTimeout: cfg.NotesTimeout.Duration,
		Rand:         rand,
		Logger:       logger,
	})

	out := cmd.OutOrStdout()
	if genOutput != "" {
		file, err := os.Create(genOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = file.Close() }()
		out = file
	}

	return generate(cmd.Context(), out, generator, req)
}

// loadGenerateInput reads the career JSON or the notes the kind needs
func loadGenerateInput(req *generateRequest) error {
	switch req.Kind {
	case kindResume, kindCover:
		if genInput == "" {
			return fmt.Errorf("--input is required for %s", req.Kind)
		}
		data, err := os.ReadFile(genInput)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if err := json.Unmarshal(data, &req.Career); err != nil {
			return fmt.Errorf("failed to parse input JSON: %w", err)
		}
	default:
		notes := genNotes
		if genNotesFile != "" {
			text, _, err := ingestion.IngestFromFile(genNotesFile)
			if err != nil {
				return fmt.Errorf("failed to read notes: %w", err)
			}
			notes = text
		}
		if strings.TrimSpace(notes) == "" {
			return fmt.Errorf("--notes-file or --notes is required for %s", req.Kind)
		}
		req.Notes = templates.NotesInput{Notes: notes}
	}
	return nil
}

// generate runs one flow and writes its result
func generate(ctx context.Context, out io.Writer, g *pipeline.Generator, req generateRequest) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !slices.Contains(generateKinds, req.Kind) {
		return fmt.Errorf("unknown kind %q (want one of %s)", req.Kind, strings.Join(generateKinds, ", "))
	}

	printer := observability.NewPrinter(out)

	switch req.Kind {
	case kindResume:
		result, err := g.Resume(ctx, req.Career.ResumeInput, req.Prefs)
		if err != nil {
			return err
		}
		if req.Verbose {
			printer.PrintProvider(req.Kind, result.Provider)
			printer.PrintResume(result.Resume)
			printer.PrintWarnings("UNSUPPORTED ENTRIES", reportWarnings(result.Report))
			return nil
		}
		return writeJSON(out, result)

	case kindCover:
		result, err := g.Cover(ctx, req.Career.cover(), req.Prefs)
		if err != nil {
			return err
		}
		if req.Verbose {
			printer.PrintProvider(req.Kind, result.Provider)
			printer.PrintCoverLetter(result.CoverLetter)
			return nil
		}
		return writeJSON(out, result)

	case kindSummary, kindFlashcards:
		result, err := g.Notes(ctx, req.Notes, req.Prefs)
		if err != nil {
			return err
		}
		if req.Kind == kindSummary {
			if req.Verbose {
				printer.PrintProvider(req.Kind, result.Provider.Summary)
				printer.PrintSummary(result.Summary)
				return nil
			}
			return writeJSON(out, map[string]any{"provider": result.Provider.Summary, "summary": result.Summary})
		}
		if req.Verbose {
			printer.PrintProvider(req.Kind, result.Provider.Flashcards)
			printer.PrintFlashcards(result.Flashcards)
			return nil
		}
		return writeJSON(out, map[string]any{"provider": result.Provider.Flashcards, "flashcards": result.Flashcards})

	default:
		result, err := g.Quiz(ctx, req.Notes, req.Prefs)
		if err != nil {
			return err
		}
		if req.Verbose {
			printer.PrintProvider(req.Kind, result.Provider)
			printer.PrintQuiz(result.Quiz)
			return nil
		}
		return writeJSON(out, result)
	}
}

func reportWarnings(report reconcile.Report) []string {
	warnings := make([]string, 0, len(report.Unsupported)+len(report.SchemaErrors))
	for _, f := range report.Unsupported {
		warnings = append(warnings, fmt.Sprintf("%s: %s", f.Section, f.Value))
	}
	for _, e := range report.SchemaErrors {
		warnings = append(warnings, "schema: "+e)
	}
	return warnings
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
