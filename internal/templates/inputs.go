// Package templates generates resume, cover letter, summary, flashcard and quiz
// content from user-supplied text alone. Every generator is a pure function of
// its input (plus an injected Rand where output is shuffled) and never fails.
package templates

import (
	"math/rand/v2"
	"sync"

	"github.com/jonathan/lift/internal/types"
)

// ResumeInput holds the raw resume fields a user submits
type ResumeInput struct {
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	LinkedIn       string         `json:"linkedin"`
	Objective      string         `json:"objective"`
	Experience     types.FlexList `json:"experience"`
	Education      types.FlexList `json:"education"`
	Skills         types.FlexList `json:"skills"`
	Certifications types.FlexList `json:"certifications"`
}

// CoverInput holds the raw cover letter fields a user submits
type CoverInput struct {
	Name       string `json:"name"`
	Recipient  string `json:"recipient"`
	Position   string `json:"position"`
	Paragraphs string `json:"paragraphs"`
}

// NotesInput holds study notes and the user's notes preferences
type NotesInput struct {
	Notes               string `json:"notes"`
	SummaryLength       string `json:"summaryLength,omitempty"`
	FlashcardDifficulty string `json:"flashcardDifficulty,omitempty"`
}

// Rand is the randomness source used for quiz shuffling and flashcard padding
type Rand interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand returns a non-cryptographic, unseeded Rand
func DefaultRand() Rand {
	return defaultRand{}
}

// lockedRand serializes access to a seeded source, which is not safe for concurrent use
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// NewSeededRand returns a reproducible Rand that may be shared across goroutines
func NewSeededRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed))}
}

func orDefault(r Rand) Rand {
	if r == nil {
		return DefaultRand()
	}
	return r
}
