package ingestion

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFToText extracts the plain text of every page and returns it with the page count.
func PDFToText(data []byte) (text string, pages int, err error) {
	// The pdf reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = &PDFError{Message: fmt.Sprintf("malformed PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, &PDFError{Message: "failed to open PDF", Cause: err}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", 0, &PDFError{Message: "failed to read PDF text", Cause: err}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", 0, &PDFError{Message: "failed to read PDF text", Cause: err}
	}

	return buf.String(), reader.NumPage(), nil
}
