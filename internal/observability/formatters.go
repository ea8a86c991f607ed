package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/lift/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI's verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, marking the cut with "..."
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// moreLine reports how many items were not shown
func moreLine(sb *strings.Builder, total int, noun string) {
	if total > maxItemsToShow {
		fmt.Fprintf(sb, "... and %d more %s\n", total-maxItemsToShow, noun)
	}
}

// PrintProvider outputs which provider produced a result.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProvider(kind, provider string) {
	fmt.Fprintf(p.out, "%s generated by: %s\n", kind, provider)
}

// PrintResume outputs a human-readable summary of a resume draft.
func (p *Printer) PrintResume(resume *types.ResumeDraft) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", resume.Name)
	for _, contact := range []struct{ label, value string }{
		{"Email:", resume.Email},
		{"Phone:", resume.Phone},
		{"Address:", resume.Address},
		{"LinkedIn:", resume.LinkedIn},
	} {
		if contact.value != "" {
			fmt.Fprintf(&sb, "%-9s %s\n", contact.label, contact.value)
		}
	}

	if resume.Objective != "" {
		fmt.Fprintf(&sb, "\nObjective:\n  %s\n", resume.Objective)
	}

	if len(resume.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		for _, e := range resume.Experience[:min(len(resume.Experience), maxItemsToShow)] {
			fmt.Fprintf(&sb, "  • %s\n", joinNonEmpty(" @ ", e.Title, e.Company))
			if e.Dates != "" {
				fmt.Fprintf(&sb, "    %s\n", e.Dates)
			}
		}
		moreLine(&sb, len(resume.Experience), "entries")
	}

	if len(resume.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		for _, e := range resume.Education[:min(len(resume.Education), maxItemsToShow)] {
			fmt.Fprintf(&sb, "  • %s\n", joinNonEmpty(", ", e.Degree, e.School, e.Dates))
		}
		moreLine(&sb, len(resume.Education), "entries")
	}

	if len(resume.Skills) > 0 {
		fmt.Fprintf(&sb, "\nSkills (%d):\n  %s\n", len(resume.Skills), strings.Join(resume.Skills, ", "))
	}

	if len(resume.Certifications) > 0 {
		sb.WriteString("\nCertifications:\n")
		for _, c := range resume.Certifications {
			fmt.Fprintf(&sb, "  • %s\n", c)
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverLetter outputs the cover letter header and paragraph openings.
func (p *Printer) PrintCoverLetter(letter *types.CoverLetterDraft) {
	if letter == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "From:     %s\n", letter.Name)
	if letter.Recipient != "" {
		fmt.Fprintf(&sb, "To:       %s\n", letter.Recipient)
	}
	if letter.Position != "" {
		fmt.Fprintf(&sb, "Position: %s\n", letter.Position)
	}
	for i, paragraph := range letter.Paragraphs {
		fmt.Fprintf(&sb, "\n¶%d %s\n", i+1, paragraph)
	}

	p.printBox("COVER LETTER", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the first lines of a study summary.
func (p *Printer) PrintSummary(summary string) {
	if strings.TrimSpace(summary) == "" {
		return
	}

	paragraphs := strings.Split(summary, "\n\n")
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d paragraphs\n\n", len(paragraphs))
	for _, paragraph := range paragraphs[:min(len(paragraphs), maxItemsToShow)] {
		fmt.Fprintf(&sb, "• %s\n", paragraph)
	}
	moreLine(&sb, len(paragraphs), "paragraphs")

	p.printBox("SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFlashcards outputs the first flashcards.
func (p *Printer) PrintFlashcards(cards []types.FlashCard) {
	if len(cards) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d flashcards\n\n", len(cards))
	for _, card := range cards[:min(len(cards), maxItemsToShow)] {
		fmt.Fprintf(&sb, "Q: %s\nA: %s\n\n", card.Question, card.Answer)
	}
	moreLine(&sb, len(cards), "cards")

	p.printBox("FLASHCARDS", strings.TrimRight(sb.String(), "\n"))
}

// PrintQuiz outputs the first quiz questions with the correct option marked.
func (p *Printer) PrintQuiz(items []types.QuizItem) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d questions\n\n", len(items))
	for i, item := range items[:min(len(items), maxItemsToShow)] {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, item.Question)
		for j, option := range item.Options {
			letter := types.OptionLetters[min(j, len(types.OptionLetters)-1)]
			marker := " "
			if letter == item.CorrectOption {
				marker = "✓"
			}
			fmt.Fprintf(&sb, "  %s %s) %s\n", marker, letter, option)
		}
		sb.WriteString("\n")
	}
	moreLine(&sb, len(items), "questions")

	p.printBox("QUIZ", strings.TrimRight(sb.String(), "\n"))
}

// PrintWarnings outputs reconciliation warnings, or a clean marker when there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(title string, warnings []string) {
	if len(warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO WARNINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d warnings:\n\n", len(warnings))
	for _, w := range warnings {
		fmt.Fprintf(&sb, "⚠ %s\n", w)
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
