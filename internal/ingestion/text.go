// Package ingestion turns uploaded or pasted notes (plain text, HTML, PDF) into clean text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	spaceRunRe  = regexp.MustCompile(`\s+`)
	blankRunsRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Clean each line
	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	// 3. Collapse runs of blank lines and trim the whole text
	result := strings.Join(cleanedLines, "\n")
	result = blankRunsRe.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	// Markdown headings lose their indentation
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullets keep indentation so nesting survives
	indent := len(line) - len(trimmed)
	if isBulletLine(line) {
		return strings.Repeat(" ", indent) + trimmed
	}

	content := spaceRunRe.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", indent) + content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// Extract converts raw document bytes to cleaned text. The format is detected
// from the filename, the declared content type, and the leading bytes.
func Extract(filename, contentType string, data []byte) (string, *Metadata, error) {
	format := DetectFormat(filename, contentType, data)

	var (
		text  string
		pages int
		err   error
	)
	switch format {
	case FormatPDF:
		text, pages, err = PDFToText(data)
	case FormatHTML:
		text, err = HTMLToText(string(data))
	case FormatText:
		text = string(data)
	default:
		return "", nil, &UnsupportedFormatError{Filename: filename, ContentType: contentType}
	}
	if err != nil {
		return "", nil, err
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, &EmptyDocumentError{Filename: filename}
	}

	metadata := NewMetadata(cleaned, filename, format)
	metadata.Pages = pages
	return cleaned, metadata, nil
}

// IngestFromFile reads a notes file from disk and returns cleaned text with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Extract(filepath.Base(path), "", content)
}
