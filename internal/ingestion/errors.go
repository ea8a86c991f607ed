package ingestion

import "fmt"

// UnsupportedFormatError is returned when a document is not text, HTML, or PDF.
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format (file %q, content type %q)", e.Filename, e.ContentType)
}

// EmptyDocumentError is returned when a document yields no text.
type EmptyDocumentError struct {
	Filename string
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("no text found in %q", e.Filename)
}

// PDFError wraps failures from the PDF reader.
type PDFError struct {
	Message string
	Cause   error
}

func (e *PDFError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf error: %s", e.Message)
}

func (e *PDFError) Unwrap() error {
	return e.Cause
}
