package latex

import "strings"

const (
	docClassMarker  = `\documentclass`
	beginDocMarker  = `\begin{document}`
	endDocMarker    = `\end{document}`
	beginItemMarker = `\begin{itemize}`
	endItemMarker   = `\end{itemize}`
)

// RepairStructure validates document structure, repairing what it safely
// can. A missing \end{document} or unclosed itemize is appended; a missing
// \documentclass or \begin{document} is a MalformedError because there is
// no way to guess what the preamble should have been.
func RepairStructure(doc string) (string, error) {
	if !strings.Contains(doc, docClassMarker) {
		return "", &MalformedError{Reason: "missing \\documentclass"}
	}
	if !strings.Contains(doc, beginDocMarker) {
		return "", &MalformedError{Reason: "missing \\begin{document}"}
	}

	doc = strings.TrimSpace(doc)

	// Unclosed itemize environments are appended just before the document
	// end so the list content survives.
	open := strings.Count(doc, beginItemMarker) - strings.Count(doc, endItemMarker)
	if open > 0 {
		closers := strings.Repeat(endItemMarker+"\n", open)
		if idx := strings.LastIndex(doc, endDocMarker); idx >= 0 {
			doc = doc[:idx] + closers + doc[idx:]
		} else {
			doc = doc + "\n" + strings.TrimSuffix(closers, "\n")
		}
	}

	if !strings.Contains(doc, endDocMarker) {
		doc = doc + "\n" + endDocMarker
	}

	return doc, nil
}
