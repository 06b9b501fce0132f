// Package export renders LaTeX into deliverable artifacts through the
// external compiler service and validates what comes back.
package export

import (
	"bytes"
	"fmt"
	"strings"
)

// Format is a closed enum of export formats.
type Format int

// Supported export formats.
const (
	FormatLaTeX Format = iota
	FormatPDF
	FormatPNG
	FormatJPEG
)

// formatInfo is the single source of truth for per-format metadata:
// canonical name, content type, file extension, and the magic-number
// prefix of a valid artifact (empty for text formats).
var formatInfo = map[Format]struct {
	name        string
	contentType string
	extension   string
	magic       []byte
}{
	FormatLaTeX: {"latex", "text/plain", "tex", nil},
	FormatPDF:   {"pdf", "application/pdf", "pdf", []byte("%PDF")},
	FormatPNG:   {"png", "image/png", "png", []byte("\x89PNG")},
	FormatJPEG:  {"jpg", "image/jpeg", "jpg", []byte("\xFF\xD8\xFF")},
}

// ParseFormat resolves a user-supplied format string, case-insensitively.
// "jpeg" and "jpg" are the same format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "latex", "tex":
		return FormatLaTeX, nil
	case "pdf":
		return FormatPDF, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return 0, fmt.Errorf("unsupported format %q (supported: latex, pdf, png, jpg)", s)
}

// ParseImageFormat is ParseFormat restricted to raster formats.
func ParseImageFormat(s string) (Format, error) {
	format, err := ParseFormat(s)
	if err != nil {
		return 0, err
	}
	if format != FormatPNG && format != FormatJPEG {
		return 0, fmt.Errorf("unsupported image format %q (supported: png, jpg, jpeg)", s)
	}
	return format, nil
}

func (f Format) String() string      { return formatInfo[f].name }
func (f Format) ContentType() string { return formatInfo[f].contentType }
func (f Format) Extension() string   { return formatInfo[f].extension }

// ValidateMagic reports whether data starts with the format's magic
// number. Text formats only require non-empty data.
func (f Format) ValidateMagic(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	magic := formatInfo[f].magic
	if magic == nil {
		return true
	}
	return bytes.HasPrefix(data, magic)
}
