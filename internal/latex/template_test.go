package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapInTemplate_EmbedsBody(t *testing.T) {
	doc := WrapInTemplate(`\section{Experience}`)

	assert.Contains(t, doc, `\documentclass[letterpaper,11pt]{article}`)
	assert.Contains(t, doc, `\section{Experience}`)
	assert.Contains(t, doc, `\end{document}`)
	assert.NotContains(t, doc, bodyPlaceholder)
}

func TestFallbackDocument_EscapesName(t *testing.T) {
	doc := FallbackDocument("Jones & Sons")

	assert.Contains(t, doc, `Jones \& Sons`)
	assert.Contains(t, doc, `\begin{document}`)
}

func TestFallbackDocument_DefaultsName(t *testing.T) {
	assert.Contains(t, FallbackDocument("  "), "Candidate")
}
