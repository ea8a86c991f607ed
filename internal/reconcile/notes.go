package reconcile

import (
	"strconv"
	"strings"

	"github.com/jonathan/lift/internal/fields"
	"github.com/jonathan/lift/internal/schemas"
	"github.com/jonathan/lift/internal/templates"
	"github.com/jonathan/lift/internal/types"
)

// Flashcards extracts flashcards from provider content, dropping malformed cards.
// A result with no valid cards is ErrEmptyResult.
func Flashcards(content string) ([]types.FlashCard, error) {
	list, err := decodeList(content, "flashcards", "cards")
	if err != nil {
		return nil, err
	}

	cards := make([]types.FlashCard, 0, len(list))
	for _, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		card := types.FlashCard{
			Question: fields.FirstOf(obj, "question", "front", "q", "term"),
			Answer:   fields.FirstOf(obj, "answer", "back", "a", "definition"),
		}
		if schemas.Validate(schemas.FlashCard, card) != nil {
			continue
		}
		cards = append(cards, card)
		if len(cards) == templates.MaxFlashcards {
			break
		}
	}

	if len(cards) == 0 {
		return nil, ErrEmptyResult
	}
	return cards, nil
}

// Quiz extracts quiz items from provider content, dropping malformed items.
// Solutions are always cleared. A result with no valid items is ErrEmptyResult.
func Quiz(content string) ([]types.QuizItem, error) {
	list, err := decodeList(content, "quiz", "questions", "items")
	if err != nil {
		return nil, err
	}

	items := make([]types.QuizItem, 0, len(list))
	for _, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		item, ok := quizItem(obj)
		if !ok || schemas.Validate(schemas.QuizItem, item) != nil {
			continue
		}
		items = append(items, item)
		if len(items) == templates.MaxQuizItems {
			break
		}
	}

	if len(items) == 0 {
		return nil, ErrEmptyResult
	}
	return items, nil
}

func quizItem(obj map[string]any) (types.QuizItem, bool) {
	rawOptions, _ := firstPresent(obj, "options", "choices", "answers").([]any)
	options := make([]string, 0, len(rawOptions))
	for _, o := range rawOptions {
		options = append(options, fields.Unwrap(o))
	}

	correct, ok := correctLetter(firstPresent(obj, "correctOption", "correct", "answer"), options)
	if !ok {
		return types.QuizItem{}, false
	}

	return types.QuizItem{
		Question:      fields.FirstOf(obj, "question", "prompt", "q"),
		Options:       options,
		CorrectOption: correct,
		Solution:      nil,
	}, true
}

// correctLetter accepts a letter ("b", "B)", "Option B"), a zero-based index, or the option text
func correctLetter(v any, options []string) (string, bool) {
	switch val := v.(type) {
	case float64:
		return letterAt(int(val), options)
	case string:
		s := strings.TrimSpace(val)
		for i, option := range options {
			if option != "" && strings.EqualFold(s, option) {
				return letterAt(i, options)
			}
		}
		s = strings.TrimPrefix(strings.ToUpper(s), "OPTION ")
		s = strings.TrimRight(s, ").: ")
		for i, letter := range types.OptionLetters {
			if s == letter {
				return letterAt(i, options)
			}
		}
		if n, err := strconv.Atoi(s); err == nil {
			return letterAt(n, options)
		}
	}
	return "", false
}

func letterAt(i int, options []string) (string, bool) {
	if i < 0 || i >= len(types.OptionLetters) || i >= len(options) {
		return "", false
	}
	return types.OptionLetters[i], true
}
