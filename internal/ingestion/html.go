package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed before text extraction
const noiseSelectors = "script, style, noscript, nav, footer, header, iframe, svg, form, .ad, .advertisement, .sidebar, .cookie-banner"

// blockSelectors end a line of text
const blockSelectors = "p, div, li, tr, h1, h2, h3, h4, h5, h6, blockquote, pre, section, article, dt, dd"

// HTMLToText parses HTML and returns its readable text, one block element per line.
// List items are rendered as "- " bullets.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelectors).Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find(blockSelectors).AppendHtml("\n")

	root := doc.Find("main, article").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}
	if root.Length() == 0 {
		root = doc.Selection
	}

	return trimLines(root.Text()), nil
}

// trimLines trims every line and drops the empty ones
func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
