package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// IsPDF reports whether the bytes carry the PDF magic header.
func IsPDF(b []byte) bool {
	// PDF starts with "%PDF-"
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

// Extract returns the plain text of a PDF document.
func Extract(data []byte) (string, error) {
	if !IsPDF(data) {
		return "", fmt.Errorf("not a PDF document")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	text := collapseWhitespace(string(b))
	if text == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return text, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
