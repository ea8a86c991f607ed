package templates

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/lift/internal/types"
)

// Quiz bounds
const (
	MaxQuizItems        = 10
	maxQuizCandidates   = 20
	minQuizSourceLen    = 8
	shortFactLen        = 60
	summarizePromptLen  = 80
	reversedDistractLen = 60
	quizOptionCount     = 3
	lineModeThreshold   = 4
)

const (
	numberBlank        = "____"
	noneOfTheAbove     = "None of the above"
	notCorrectSuffix   = " (not correct)"
	accordingToPrefix  = "According to the notes, "
	summarizesQuestion = "Which statement best summarizes: "
)

var (
	digitRe       = regexp.MustCompile(`\d`)
	numberRe      = regexp.MustCompile(`\d+(?:\.\d+)?`)
	wholeNumberRe = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
)

// BuildQuiz turns notes into at most ten three-option multiple-choice questions.
func BuildQuiz(in NotesInput, r Rand) []types.QuizItem {
	r = orDefault(r)

	items := []types.QuizItem{}
	for _, candidate := range quizCandidates(in.Notes) {
		if len(items) == MaxQuizItems {
			break
		}
		text := cleanCandidate(candidate)
		if utf8.RuneCountInString(text) < minQuizSourceLen {
			continue
		}
		question, answer := quizQuestion(text)
		items = append(items, buildQuizItem(question, answer, r))
	}
	return items
}

// quizCandidates prefers lines when the notes have more than four, then sentences, then the whole text
func quizCandidates(notes string) []string {
	var candidates []string
	if lines := NonEmptyLines(notes); len(lines) > lineModeThreshold {
		candidates = lines
	} else if sentences := Sentences(notes); len(sentences) > 0 {
		candidates = sentences
	} else if whole := strings.TrimSpace(notes); whole != "" {
		candidates = []string{whole}
	}

	if len(candidates) > maxQuizCandidates {
		candidates = candidates[:maxQuizCandidates]
	}
	return candidates
}

func quizQuestion(text string) (question, answer string) {
	if term, definition, ok := strings.Cut(text, ":"); ok {
		term, definition = cleanCandidate(term), trimTerminal(definition)
		if term != "" && definition != "" {
			return "What is " + trimTerminal(term) + "?", definition
		}
	}

	if utf8.RuneCountInString(text) < shortFactLen {
		if left, right, ok := strings.Cut(text, "="); ok {
			left, right = strings.TrimSpace(left), trimTerminal(right)
			if left != "" && right != "" {
				return accordingToPrefix + left + " = ?", right
			}
		}
		if digitRe.MatchString(text) {
			if loc := numberRe.FindStringIndex(text); loc != nil {
				answer = text[loc[0]:loc[1]]
				return accordingToPrefix + text[:loc[0]] + numberBlank + text[loc[1]:], answer
			}
		}
	}

	return summarizesQuestion + truncate(text, summarizePromptLen), text
}

func buildQuizItem(question, answer string, r Rand) types.QuizItem {
	options := append(distractors(answer), answer)

	// Fisher-Yates
	for i := len(options) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		options[i], options[j] = options[j], options[i]
	}

	correct := 0
	for i, option := range options {
		if option == answer {
			correct = i
			break
		}
	}

	return types.QuizItem{
		Question:      question,
		Options:       options,
		CorrectOption: types.OptionLetters[correct],
		Solution:      nil,
	}
}

// distractors returns exactly two wrong options, distinct from each other and from answer
func distractors(answer string) []string {
	want := quizOptionCount - 1
	out := make([]string, 0, want)
	add := func(s string) {
		if len(out) == want || s == "" || s == answer {
			return
		}
		for _, existing := range out {
			if existing == s {
				return
			}
		}
		out = append(out, s)
	}

	if n, err := strconv.ParseFloat(answer, 64); err == nil && wholeNumberRe.MatchString(answer) {
		precision := 0
		if _, frac, ok := strings.Cut(answer, "."); ok {
			precision = len(frac)
		}
		add(formatNumber(n+1, precision))
		add(formatNumber(n-1, precision))
		add(formatNumber(n*2, precision))
	} else if words := strings.Fields(answer); len(words) > 1 {
		reversed := make([]string, len(words))
		for i, w := range words {
			reversed[len(words)-1-i] = w
		}
		add(truncate(strings.Join(reversed, " "), reversedDistractLen))
	}

	add(answer + notCorrectSuffix)
	add(noneOfTheAbove)
	return out
}

func formatNumber(n float64, precision int) string {
	return strconv.FormatFloat(n, 'f', precision, 64)
}
