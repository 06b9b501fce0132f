package latex

import (
	"errors"
	"strings"
)

// State tracks a document through the cleaning pipeline.
type State string

// Pipeline states. A document moves RAW -> CLEANED -> VALID or MALFORMED;
// there is no path back out of MALFORMED.
const (
	StateRaw       State = "raw"
	StateCleaned   State = "cleaned"
	StateValid     State = "valid"
	StateMalformed State = "malformed"
)

// Document is LLM output moving through the cleaning pipeline.
type Document struct {
	Raw     string
	Cleaned string
	State   State
	Reason  string
}

// refusalPhrases mark responses where the model declined instead of
// producing a document.
var refusalPhrases = []string{
	"i cannot",
	"i can't",
	"i'm sorry",
	"i am sorry",
	"as an ai",
	"i'm unable",
}

// Process runs raw LLM output through the cleaning pipeline: narration and
// markdown stripping, sentinel extraction, unicode normalization, lonely
// \item wrapping, and structural validation with repair. The returned
// document is either StateValid with usable Cleaned content or
// StateMalformed with a Reason.
func Process(raw string) *Document {
	doc := &Document{Raw: raw, State: StateRaw}

	if IsRefusal(raw) {
		return doc.malformed("model refused to produce a document")
	}

	text, reason := stripMarkdown(raw)
	if reason != "" {
		return doc.malformed(reason)
	}

	text = extractDocument(text)
	text = NormalizeUnicode(text)
	text = wrapLonelyItems(text)
	doc.Cleaned = strings.TrimSpace(text)
	doc.State = StateCleaned

	repaired, err := RepairStructure(doc.Cleaned)
	if err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			return doc.malformed(malformed.Reason)
		}
		return doc.malformed(err.Error())
	}
	doc.Cleaned = repaired
	doc.State = StateValid
	return doc
}

func (d *Document) malformed(reason string) *Document {
	d.State = StateMalformed
	d.Reason = reason
	return d
}

// IsRefusal reports whether the response is the model declining rather
// than a document. Only the opening of the response is considered, and a
// response that does carry \documentclass is never a refusal.
func IsRefusal(raw string) bool {
	if strings.Contains(raw, `\documentclass`) {
		return false
	}
	head := strings.ToLower(strings.TrimSpace(raw))
	if len(head) > 200 {
		head = head[:200]
	}
	for _, phrase := range refusalPhrases {
		if strings.Contains(head, phrase) {
			return true
		}
	}
	return false
}

// stripMarkdown removes code fences and narration around the document.
// A fenced block in a non-LaTeX language means the model answered the
// wrong question, which is reported as a malformed reason.
func stripMarkdown(text string) (string, string) {
	trimmed := strings.TrimSpace(text)
	idx := strings.Index(trimmed, "```")
	if idx < 0 {
		return trimmed, ""
	}

	after := trimmed[idx+3:]
	lang := ""
	if nl := strings.Index(after, "\n"); nl >= 0 {
		lang = strings.ToLower(strings.TrimSpace(after[:nl]))
		after = after[nl+1:]
	}
	switch lang {
	case "", "latex", "tex":
	default:
		return "", "response contained a " + lang + " code block instead of LaTeX"
	}

	if end := strings.LastIndex(after, "```"); end >= 0 {
		after = after[:end]
	}
	return strings.TrimSpace(after), ""
}

// extractDocument slices the actual document out of surrounding narration.
// Sentinel markers win when present; otherwise the slice runs from
// \documentclass to \end{document} or, failing that, to the end of the
// text so structural repair can finish the job.
func extractDocument(text string) string {
	if begin := strings.Index(text, BeginSentinel); begin >= 0 {
		rest := text[begin+len(BeginSentinel):]
		if end := strings.Index(rest, EndSentinel); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}

	start := strings.Index(text, `\documentclass`)
	if start < 0 {
		return strings.TrimSpace(text)
	}
	text = text[start:]
	const endMarker = `\end{document}`
	if end := strings.Index(text, endMarker); end >= 0 {
		text = text[:end+len(endMarker)]
	}
	return strings.TrimSpace(text)
}

// listOpeners and listClosers are the commands that open and close an
// itemize context, including the resume macros that expand to one.
var (
	listOpeners = []string{`\begin{itemize}`, `\resumeItemListStart`, `\resumeSubHeadingListStart`}
	listClosers = []string{`\end{itemize}`, `\resumeItemListEnd`, `\resumeSubHeadingListEnd`}
)

// wrapLonelyItems wraps runs of \item lines that appear outside any list
// environment in an itemize block. A lonely \item is a hard compile error,
// and models drop list wrappers often enough that this is worth repairing.
func wrapLonelyItems(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	depth := 0
	inWrapped := false

	closeWrapped := func() {
		if inWrapped {
			out = append(out, `\end{itemize}`)
			inWrapped = false
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		opens := countAny(trimmed, listOpeners)
		closes := countAny(trimmed, listClosers)
		isItem := strings.HasPrefix(trimmed, `\item`) || strings.HasPrefix(trimmed, `\resumeItem`)

		if isItem && depth == 0 && opens == 0 && closes == 0 {
			if !inWrapped {
				out = append(out, `\begin{itemize}`)
				inWrapped = true
			}
			out = append(out, line)
			continue
		}

		closeWrapped()
		depth += opens - closes
		if depth < 0 {
			depth = 0
		}
		out = append(out, line)
	}
	closeWrapped()

	return strings.Join(out, "\n")
}

func countAny(s string, needles []string) int {
	n := 0
	for _, needle := range needles {
		n += strings.Count(s, needle)
	}
	return n
}
