package extract

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"skillmuse/internal/apperr"
)

// fromPDF extracts plain text from a PDF already saved on disk.
func (e *Extractor) fromPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", apperr.Validation("could not open PDF: %v", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", apperr.Validation("could not extract PDF text: %v", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}

	text := SanitizeText(buf.String())
	if utf8.RuneCountInString(text) < e.minChars {
		return "", apperr.Validation("PDF had too little extractable text, need at least %d characters", e.minChars)
	}
	return truncate(text, e.maxChars), nil
}
