package ingestion

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedUpload is returned for file types the upload endpoint
// cannot extract text from.
var ErrUnsupportedUpload = fmt.Errorf("unsupported file type")

// ExtractUpload pulls plain text out of an uploaded resume file. PDF and
// plain-text files are supported; anything else (DOCX included) is
// rejected so the caller can tell the user to convert it.
func ExtractUpload(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data)
	case ".txt", ".text", ".md":
		return extractPlainText(data), nil
	default:
		return "", fmt.Errorf("%w: %s (use PDF or plain text)", ErrUnsupportedUpload, filepath.Ext(filename))
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var buf bytes.Buffer
	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}
	if _, err := buf.ReadFrom(plainText); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	text := CleanText(buf.String())
	if text == "" {
		return "", fmt.Errorf("PDF contains no extractable text")
	}
	return text, nil
}

// extractPlainText decodes a text upload. Valid UTF-8 is used as is;
// anything else is treated as Latin-1 so legacy exports still work.
func extractPlainText(data []byte) string {
	if utf8.Valid(data) {
		return CleanText(string(data))
	}

	runes := make([]rune, 0, len(data))
	for _, b := range data {
		runes = append(runes, rune(b))
	}
	return CleanText(string(runes))
}
