// Package latex builds, cleans, and validates LaTeX resume documents.
package latex

import "strings"

// unicodeReplacements maps characters LLMs like to emit to LaTeX-safe
// ASCII. Applied before special-character escaping.
var unicodeReplacements = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", "``", // left double quote
	"”", "''", // right double quote
	"–", "--", // en dash
	"—", "---", // em dash
	"•", "-", // bullet
	"·", "-", // middle dot
	"…", "...", // ellipsis
	" ", " ", // non-breaking space
)

// NormalizeUnicode replaces typographic unicode characters with their
// LaTeX-safe ASCII equivalents.
func NormalizeUnicode(text string) string {
	return unicodeReplacements.Replace(text)
}

// Escape escapes LaTeX special characters in plain text. Unicode
// punctuation is normalized first so smart quotes survive the trip.
func Escape(text string) string {
	text = NormalizeUnicode(text)

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\\':
			sb.WriteString(`\textbackslash{}`)
		case '&', '%', '$', '#', '_', '{', '}':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '~':
			sb.WriteString(`\textasciitilde{}`)
		case '^':
			sb.WriteString(`\textasciicircum{}`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
