// Package completion produces generated content for a request, preferring the
// configured remote provider and falling back to the template engine on any failure.
package completion

import "github.com/jonathan/lift/internal/templates"

// ContextType selects the template generator used as the fallback for a request
type ContextType string

// Supported context types
const (
	TypeResume     ContextType = "resume"
	TypeCover      ContextType = "cover"
	TypeSummary    ContextType = "summary"
	TypeFlashcards ContextType = "flashcards"
	TypeQuiz       ContextType = "quiz"
)

// OutputKind is the shape the caller expects from the provider
type OutputKind string

// Output kinds
const (
	KindText OutputKind = "text"
	KindJSON OutputKind = "json"
)

// TemplateProvider is the provider name reported for template results
const TemplateProvider = "template"

// Bundle carries the raw user fields for the selected generator
type Bundle struct {
	Type   ContextType
	Resume *templates.ResumeInput
	Cover  *templates.CoverInput
	Notes  *templates.NotesInput
}

// Request is a single completion request
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	Kind        OutputKind
	Context     Bundle
}

// Result is the generated content and the provider that produced it
type Result struct {
	Provider string `json:"provider"`
	Content  string `json:"content"`
}

// FromTemplate reports whether the result came from the template engine
func (r *Result) FromTemplate() bool {
	return r.Provider == TemplateProvider
}
