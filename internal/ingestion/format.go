package ingestion

import (
	"bytes"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// Format identifies a supported document format
type Format string

// Supported formats
const (
	FormatText    Format = "text"
	FormatHTML    Format = "html"
	FormatPDF     Format = "pdf"
	FormatUnknown Format = "unknown"
)

var pdfMagic = []byte("%PDF-")

// DetectFormat picks a format from the file extension, then the declared
// content type, then the content itself.
func DetectFormat(filename, contentType string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".html", ".htm":
		return FormatHTML
	case ".txt", ".md", ".markdown", ".text":
		return FormatText
	}

	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if format := formatForMediaType(mediaType); format != FormatUnknown {
			return format
		}
	}

	if bytes.HasPrefix(data, pdfMagic) {
		return FormatPDF
	}
	return formatForMediaType(sniff(data))
}

func sniff(data []byte) string {
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mediaType
}

func formatForMediaType(mediaType string) Format {
	switch {
	case mediaType == "application/pdf":
		return FormatPDF
	case mediaType == "text/html", mediaType == "application/xhtml+xml":
		return FormatHTML
	case strings.HasPrefix(mediaType, "text/"):
		return FormatText
	default:
		return FormatUnknown
	}
}

