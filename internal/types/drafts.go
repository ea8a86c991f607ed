// Package types provides type definitions for structured data used throughout the Lift generation service.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeDraft is the structured resume returned to clients.
// Optional contact fields and empty sections are omitted from JSON entirely.
type ResumeDraft struct {
	Name           string            `json:"name"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Address        string            `json:"address,omitempty"`
	LinkedIn       string            `json:"linkedin,omitempty"`
	Objective      string            `json:"objective,omitempty"`
	Experience     []ExperienceEntry `json:"experience,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty"`
	Skills         []string          `json:"skills"`
	Certifications []string          `json:"certifications,omitempty"`
}

// ExperienceEntry represents a single employment line on a resume
type ExperienceEntry struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Dates   string `json:"dates"`
	Details string `json:"details"`
}

// EducationEntry represents a single education line on a resume
type EducationEntry struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Dates  string `json:"dates"`
}

// CoverLetterDraft is the structured cover letter returned to clients.
// Paragraphs always holds exactly two entries.
type CoverLetterDraft struct {
	Name       string   `json:"name"`
	Recipient  string   `json:"recipient"`
	Position   string   `json:"position"`
	Paragraphs []string `json:"paragraphs"`
}

// QuizItem is a single multiple-choice question with three options
type QuizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correctOption"`
	Solution      *string  `json:"solution"`
}

// FlashCard is a single study card
type FlashCard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// OptionLetters maps option indexes to their answer letters
var OptionLetters = []string{"A", "B", "C"}
