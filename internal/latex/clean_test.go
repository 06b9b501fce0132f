package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDoc = `\documentclass{article}
\begin{document}
Hello
\end{document}`

func TestProcess_CleanDocumentPassesThrough(t *testing.T) {
	doc := Process(minimalDoc)
	assert.Equal(t, StateValid, doc.State)
	assert.Equal(t, minimalDoc, doc.Cleaned)
}

func TestProcess_SentinelExtraction(t *testing.T) {
	raw := "Here is your resume:\n" + BeginSentinel + "\n" + minimalDoc + "\n" + EndSentinel + "\nLet me know!"
	doc := Process(raw)
	require.Equal(t, StateValid, doc.State)
	assert.Equal(t, minimalDoc, doc.Cleaned)
	assert.NotContains(t, doc.Cleaned, "Let me know")
}

func TestProcess_LatexFenceStripped(t *testing.T) {
	raw := "```latex\n" + minimalDoc + "\n```"
	doc := Process(raw)
	require.Equal(t, StateValid, doc.State)
	assert.Equal(t, minimalDoc, doc.Cleaned)
}

func TestProcess_NonLatexFenceIsMalformed(t *testing.T) {
	raw := "```python\nprint('hello')\n```"
	doc := Process(raw)
	assert.Equal(t, StateMalformed, doc.State)
	assert.Contains(t, doc.Reason, "python")
}

func TestProcess_RefusalIsMalformed(t *testing.T) {
	doc := Process("I'm sorry, but I cannot generate a resume from that content.")
	assert.Equal(t, StateMalformed, doc.State)
	assert.Contains(t, doc.Reason, "refused")
}

func TestProcess_MissingEndDocumentRepaired(t *testing.T) {
	raw := "\\documentclass{article}\n\\begin{document}\nHello"
	doc := Process(raw)
	require.Equal(t, StateValid, doc.State)
	assert.True(t, strings.HasSuffix(doc.Cleaned, `\end{document}`))
}

func TestProcess_MissingDocumentclassIsMalformed(t *testing.T) {
	doc := Process("\\begin{document}\nHello\n\\end{document}")
	assert.Equal(t, StateMalformed, doc.State)
	assert.Contains(t, doc.Reason, "documentclass")
}

func TestProcess_NarrationBeforeDocumentStripped(t *testing.T) {
	raw := "Sure, here's the converted document.\n\n" + minimalDoc
	doc := Process(raw)
	require.Equal(t, StateValid, doc.State)
	assert.True(t, strings.HasPrefix(doc.Cleaned, `\documentclass`))
}

func TestProcess_UnicodeNormalized(t *testing.T) {
	raw := "\\documentclass{article}\n\\begin{document}\n2019–2021 “quoted”\n\\end{document}"
	doc := Process(raw)
	require.Equal(t, StateValid, doc.State)
	assert.Contains(t, doc.Cleaned, "2019--2021")
	assert.Contains(t, doc.Cleaned, "``quoted''")
}

func TestWrapLonelyItems_WrapsBareRun(t *testing.T) {
	input := "\\item first\n\\item second"
	wrapped := wrapLonelyItems(input)
	assert.Equal(t, "\\begin{itemize}\n\\item first\n\\item second\n\\end{itemize}", wrapped)
}

func TestWrapLonelyItems_LeavesProperListsAlone(t *testing.T) {
	input := "\\begin{itemize}\n\\item first\n\\end{itemize}"
	assert.Equal(t, input, wrapLonelyItems(input))
}

func TestWrapLonelyItems_ResumeMacrosCountAsLists(t *testing.T) {
	input := "\\resumeItemListStart\n\\resumeItem{did things}\n\\resumeItemListEnd"
	assert.Equal(t, input, wrapLonelyItems(input))
}

func TestIsRefusal_DocumentWithApologyInsideIsNotRefusal(t *testing.T) {
	raw := "\\documentclass{article}\n\\begin{document}\nI'm sorry I missed the meeting\n\\end{document}"
	assert.False(t, IsRefusal(raw))
}

func TestRepairStructure_ClosesOpenItemize(t *testing.T) {
	doc := "\\documentclass{article}\n\\begin{document}\n\\begin{itemize}\n\\item x\n\\end{document}"
	repaired, err := RepairStructure(doc)
	require.NoError(t, err)
	assert.Equal(t, strings.Count(repaired, `\begin{itemize}`), strings.Count(repaired, `\end{itemize}`))
	closeIdx := strings.Index(repaired, `\end{itemize}`)
	endIdx := strings.Index(repaired, `\end{document}`)
	assert.Less(t, closeIdx, endIdx)
}
