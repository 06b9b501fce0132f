package export

import "strings"

// failureSignatures map known LaTeX compiler error fragments to hints a
// user can act on without reading a TeX log.
var failureSignatures = []struct {
	signature string
	hint      string
}{
	{
		"Undefined control sequence",
		"The document uses a command that is not defined. Check for misspelled macros or missing packages in the preamble.",
	},
	{
		"Lonely \\item",
		"An \\item appears outside a list. Wrap items in \\begin{itemize} ... \\end{itemize}.",
	},
	{
		"Misplaced alignment tab character &",
		"A raw & appears outside a table. Escape it as \\&.",
	},
	{
		"Missing $ inserted",
		"A math-mode character (_, ^, or similar) appears in plain text. Escape it or wrap the expression in $ ... $.",
	},
	{
		"Missing \\begin{document}",
		"Content appears before \\begin{document}, or the preamble is broken.",
	},
	{
		"not loadable",
		"A required font is missing on the compile host. Try the default font setup.",
	},
	{
		"not found",
		"A file referenced by the document (package, image, or class) was not found on the compile host.",
	},
}

// Diagnose scans a compiler error message or log excerpt for known
// failure signatures and returns the matching hints, in signature order.
func Diagnose(compileLog string) []string {
	var hints []string
	for _, sig := range failureSignatures {
		if strings.Contains(compileLog, sig.signature) {
			hints = append(hints, sig.hint)
		}
	}
	return hints
}
