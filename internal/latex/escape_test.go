package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape_Ampersand(t *testing.T) {
	assert.Equal(t, `AT\&T`, Escape("AT&T"))
}

func TestEscape_Percent(t *testing.T) {
	assert.Equal(t, `improved throughput by 40\%`, Escape("improved throughput by 40%"))
}

func TestEscape_Dollar(t *testing.T) {
	assert.Equal(t, `saved \$2M annually`, Escape("saved $2M annually"))
}

func TestEscape_HashAndUnderscore(t *testing.T) {
	assert.Equal(t, `issue \#42 in user\_service`, Escape("issue #42 in user_service"))
}

func TestEscape_Braces(t *testing.T) {
	assert.Equal(t, `\{json\}`, Escape("{json}"))
}

func TestEscape_Backslash(t *testing.T) {
	assert.Equal(t, `C:\textbackslash{}temp`, Escape(`C:\temp`))
}

func TestEscape_TildeAndCaret(t *testing.T) {
	assert.Equal(t, `\textasciitilde{}user\textasciicircum{}2`, Escape("~user^2"))
}

func TestEscape_PlainTextUnchanged(t *testing.T) {
	assert.Equal(t, "Built scalable services in Go", Escape("Built scalable services in Go"))
}

func TestNormalizeUnicode_SmartQuotes(t *testing.T) {
	assert.Equal(t, "don't say ``hi''", NormalizeUnicode("don’t say “hi”"))
}

func TestNormalizeUnicode_Dashes(t *testing.T) {
	assert.Equal(t, "2019--2021 --- remote", NormalizeUnicode("2019–2021 — remote"))
}

func TestNormalizeUnicode_Bullets(t *testing.T) {
	assert.Equal(t, "- led team", NormalizeUnicode("• led team"))
}
