package templates

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/lift/internal/fields"
	"github.com/jonathan/lift/internal/types"
)

// coverSeedSummaryLen is the seed length above which only its first two sentences are quoted
const coverSeedSummaryLen = 60

const maxCoverQualities = 3

var qualityRe = regexp.MustCompile(`(?i)\b(skill|experience|passion|team|work|learn|contribute|dedicated|motivated)\w*`)

var qualityPhrases = map[string]string{
	"skill":      "strong skills",
	"experience": "relevant experience",
	"passion":    "genuine passion",
	"team":       "a team-first attitude",
	"work":       "a strong work ethic",
	"learn":      "a commitment to learning",
	"contribute": "a drive to contribute",
	"dedicated":  "dedication",
	"motivated":  "self-motivation",
}

// BuildCover assembles a two-paragraph cover letter from raw user input
func BuildCover(in CoverInput) *types.CoverLetterDraft {
	recipient := fields.Clean(in.Recipient)
	position := fields.Clean(in.Position)
	seed := strings.TrimSpace(in.Paragraphs)

	return &types.CoverLetterDraft{
		Name:      fields.Clean(in.Name),
		Recipient: recipient,
		Position:  position,
		Paragraphs: []string{
			coverOpening(position, recipient, seed),
			coverClosing(position, recipient, seed),
		},
	}
}

func coverOpening(position, recipient, seed string) string {
	intro := fmt.Sprintf("I am writing to express my interest in %s at %s.", positionPhrase(position), recipientPhrase(recipient))

	var body string
	switch {
	case seed == "":
		body = "I am confident that my background, work ethic, and eagerness to learn would make me a valuable addition to your team."
	case len(seed) > coverSeedSummaryLen:
		sentences := looseSentences(seed)
		if len(sentences) > 2 {
			sentences = sentences[:2]
		}
		body = strings.Join(sentences, " ")
	default:
		body = seed
	}
	return intro + " " + body
}

func coverClosing(position, recipient, seed string) string {
	closing := fmt.Sprintf("Thank you for considering my application. I look forward to discussing how I can contribute to %s.", recipientPhrase(recipient))
	if seed == "" {
		return fmt.Sprintf("I would welcome the opportunity to bring my dedication and willingness to learn to %s. %s", positionPhrase(position), closing)
	}

	parts := []string{qualitiesSentence(seed, position)}
	if sentences := looseSentences(seed); len(sentences) > 2 {
		parts = append(parts, sentences[len(sentences)-2:]...)
	}
	parts = append(parts, closing)
	return strings.Join(parts, " ")
}

// qualitiesSentence names up to three qualities the seed mentions
func qualitiesSentence(seed, position string) string {
	var qualities []string
	seen := make(map[string]bool)
	for _, match := range qualityRe.FindAllStringSubmatch(seed, -1) {
		stem := strings.ToLower(match[1])
		if seen[stem] {
			continue
		}
		seen[stem] = true
		qualities = append(qualities, qualityPhrases[stem])
		if len(qualities) == maxCoverQualities {
			break
		}
	}

	if len(qualities) == 0 {
		return fmt.Sprintf("I would bring a strong work ethic and a willingness to learn to %s.", positionPhrase(position))
	}
	return fmt.Sprintf("I would bring %s to %s.", joinWithAnd(qualities), positionPhrase(position))
}

func positionPhrase(position string) string {
	if position == "" {
		return "this position"
	}
	return "the " + position + " position"
}

func recipientPhrase(recipient string) string {
	if recipient == "" {
		return "your organization"
	}
	return recipient
}

func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
