package templates

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/lift/internal/types"
)

// Flashcard deck bounds
const (
	MinFlashcards     = 8
	TargetFlashcards  = 12
	MaxFlashcards     = 16
	minCardSourceLen  = 10
	explainPromptLen  = 70
	genericCardAnswer = "Review this topic in your notes and answer in your own words."
)

var interrogativeRe = regexp.MustCompile(`(?i)^(what|why|how|when|where|who|whom|which|is|are|does|do|did|can|could|should|explain|define|describe)\b`)

var cardVariations = []func(q string) string{
	func(q string) string { return "Can you recall: " + q },
	func(q string) string { return "Quick check: " + q },
	func(q string) string { return "In your own words, " + lowerFirst(q) },
}

// BuildFlashcards turns notes into a deck of 8 to 16 cards, or none for blank notes.
func BuildFlashcards(in NotesInput, r Rand) []types.FlashCard {
	r = orDefault(r)

	var cards []types.FlashCard
	for _, candidate := range cardCandidates(in.Notes) {
		if card, ok := buildCard(candidate); ok {
			cards = append(cards, card)
		}
	}
	if len(cards) == 0 {
		return []types.FlashCard{}
	}

	base := len(cards)
	for len(cards) < MinFlashcards {
		src := cards[r.IntN(base)]
		cards = append(cards, types.FlashCard{
			Question: "Based on the material, " + lowerFirst(src.Question),
			Answer:   src.Answer,
		})
	}

	for len(cards) < TargetFlashcards {
		src := cards[r.IntN(base)]
		vary := cardVariations[r.IntN(len(cardVariations))]
		cards = append(cards, types.FlashCard{Question: vary(src.Question), Answer: src.Answer})
	}

	if len(cards) > MaxFlashcards {
		cards = cards[:MaxFlashcards]
	}
	return cards
}

// cardCandidates splits each line into sentences, keeping unpunctuated lines whole
func cardCandidates(notes string) []string {
	var candidates []string
	for _, line := range NonEmptyLines(notes) {
		sentences := Sentences(line)
		if len(sentences) == 0 {
			sentences = []string{line}
		}
		candidates = append(candidates, sentences...)
	}
	return candidates
}

func buildCard(candidate string) (types.FlashCard, bool) {
	text := cleanCandidate(candidate)
	if utf8.RuneCountInString(text) < minCardSourceLen {
		return types.FlashCard{}, false
	}

	if term, definition, ok := strings.Cut(text, ":"); ok {
		term, definition = cleanCandidate(term), strings.TrimSpace(definition)
		if term != "" && definition != "" {
			return types.FlashCard{Question: "What is " + trimTerminal(term) + "?", Answer: definition}, true
		}
	}

	if interrogativeRe.MatchString(text) {
		return types.FlashCard{Question: text, Answer: genericCardAnswer}, true
	}

	return types.FlashCard{Question: "Explain: " + truncate(text, explainPromptLen), Answer: text}, true
}

// lowerFirst lowercases the first letter unless the word looks like an acronym
func lowerFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	if len(runes) > 1 && unicode.IsUpper(runes[1]) {
		return s
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
