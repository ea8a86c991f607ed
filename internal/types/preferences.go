//nolint:revive // types is a standard Go package name pattern
package types

// Preference defaults applied when a user has no stored value
const (
	DefaultSummaryLength       = "medium"
	DefaultFlashcardDifficulty = "medium"
	DefaultAITone              = "professional"
	DefaultResumeTemplate      = "professional"
	DefaultCoverLetterTemplate = "formal"
)

// Preferences holds the per-user generation settings read from the preference store
type Preferences struct {
	SummaryLength       string `json:"summaryLength"`
	FlashcardDifficulty string `json:"flashcardDifficulty"`
	AITone              string `json:"aiTone"`
	ResumeTemplate      string `json:"resumeTemplate"`
	CoverLetterTemplate string `json:"coverLetterTemplate"`
}

// DefaultPreferences returns preferences populated with the documented defaults
func DefaultPreferences() Preferences {
	return Preferences{
		SummaryLength:       DefaultSummaryLength,
		FlashcardDifficulty: DefaultFlashcardDifficulty,
		AITone:              DefaultAITone,
		ResumeTemplate:      DefaultResumeTemplate,
		CoverLetterTemplate: DefaultCoverLetterTemplate,
	}
}

// WithDefaults returns a copy where every empty field is filled from DefaultPreferences
func (p Preferences) WithDefaults() Preferences {
	d := DefaultPreferences()
	if p.SummaryLength == "" {
		p.SummaryLength = d.SummaryLength
	}
	if p.FlashcardDifficulty == "" {
		p.FlashcardDifficulty = d.FlashcardDifficulty
	}
	if p.AITone == "" {
		p.AITone = d.AITone
	}
	if p.ResumeTemplate == "" {
		p.ResumeTemplate = d.ResumeTemplate
	}
	if p.CoverLetterTemplate == "" {
		p.CoverLetterTemplate = d.CoverLetterTemplate
	}
	return p
}
