package latex

import "strings"

// bodyPlaceholder marks where document content goes inside the static
// template.
const bodyPlaceholder = "%__BODY__"

// Sentinel markers the conversion prompt asks the model to wrap its
// document in.
const (
	BeginSentinel = "%__BEGIN_LATEX__"
	EndSentinel   = "%__END_LATEX__"
)

// preamble is the fixed resume preamble: letterpaper, 11pt, tight margins,
// and the resume macros the builder and the conversion prompt both rely on.
const preamble = `\documentclass[letterpaper,11pt]{article}

\usepackage{latexsym}
\usepackage[empty]{fullpage}
\usepackage{titlesec}
\usepackage{marvosym}
\usepackage[usenames,dvipsnames]{color}
\usepackage{verbatim}
\usepackage{enumitem}
\usepackage[hidelinks]{hyperref}
\usepackage{fancyhdr}
\usepackage[english]{babel}
\usepackage{tabularx}
\input{glyphtounicode}

\pagestyle{fancy}
\fancyhf{}
\fancyfoot{}
\renewcommand{\headrulewidth}{0pt}
\renewcommand{\footrulewidth}{0pt}

\addtolength{\oddsidemargin}{-0.5in}
\addtolength{\evensidemargin}{-0.5in}
\addtolength{\textwidth}{1in}
\addtolength{\topmargin}{-.5in}
\addtolength{\textheight}{1.0in}

\urlstyle{same}

\raggedbottom
\raggedright
\setlength{\tabcolsep}{0in}

\titleformat{\section}{
  \vspace{-4pt}\scshape\raggedright\large
}{}{0em}{}[\color{black}\titlerule \vspace{-5pt}]

\pdfgentounicode=1

\newcommand{\resumeItem}[1]{
  \item\small{
    {#1 \vspace{-2pt}}
  }
}

\newcommand{\resumeSubheading}[4]{
  \vspace{-2pt}\item
    \begin{tabular*}{0.97\textwidth}[t]{l@{\extracolsep{\fill}}r}
      \textbf{#1} & #2 \\
      \textit{\small#3} & \textit{\small #4} \\
    \end{tabular*}\vspace{-7pt}
}

\newcommand{\resumeProjectHeading}[2]{
    \item
    \begin{tabular*}{0.97\textwidth}{l@{\extracolsep{\fill}}r}
      \small#1 & #2 \\
    \end{tabular*}\vspace{-7pt}
}

\newcommand{\resumeSubItem}[1]{\resumeItem{#1}\vspace{-4pt}}

\renewcommand\labelitemii{$\vcenter{\hbox{\tiny$\bullet$}}$}

\newcommand{\resumeSubHeadingListStart}{\begin{itemize}[leftmargin=0.15in, label={}]}
\newcommand{\resumeSubHeadingListEnd}{\end{itemize}}
\newcommand{\resumeItemListStart}{\begin{itemize}}
\newcommand{\resumeItemListEnd}{\end{itemize}\vspace{-5pt}}
`

// docTemplate is the complete static document with a body placeholder.
const docTemplate = preamble + `
\begin{document}

` + bodyPlaceholder + `

\end{document}
`

// WrapInTemplate inserts body content into the static resume template.
func WrapInTemplate(body string) string {
	return strings.Replace(docTemplate, bodyPlaceholder, strings.TrimSpace(body), 1)
}

// FallbackDocument returns a minimal valid resume document used when the
// generated document is malformed beyond repair. The candidate name is
// escaped; everything else is static.
func FallbackDocument(name string) string {
	if strings.TrimSpace(name) == "" {
		name = "Candidate"
	}
	body := `\begin{center}
    \textbf{\Huge \scshape ` + Escape(name) + `} \\ \vspace{1pt}
\end{center}

\section{Summary}
\resumeSubHeadingListStart
  \resumeItem{Tailored resume generation was unavailable. This placeholder preserves a compilable document; please retry.}
\resumeSubHeadingListEnd`
	return WrapInTemplate(body)
}
