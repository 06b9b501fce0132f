package latex

import (
	"strings"
	"text/template"

	"github.com/cvitae/cvitae/internal/types"
)

// placeholderValues are inputs that mean "nothing real here". Fields and
// bullets matching one of these are dropped rather than typeset.
var placeholderValues = map[string]bool{
	"n/a":         true,
	"na":          true,
	"none":        true,
	"tbd":         true,
	"todo":        true,
	"xxx":         true,
	"your name":   true,
	"lorem ipsum": true,
	"placeholder": true,
}

// bodyTemplate renders the resume body in fixed section order: header,
// education, experience, projects, technical skills.
var bodyTemplate = template.Must(template.New("resume").Funcs(template.FuncMap{
	"escape": Escape,
	"join":   func(items []string) string { return Escape(strings.Join(items, ", ")) },
}).Parse(`\begin{center}
    \textbf{\Huge \scshape {{escape .PersonalInfo.Name}}} \\ \vspace{1pt}
    \small {{escape .PersonalInfo.Phone}}{{if .PersonalInfo.Email}} $|$ \href{mailto:{{.PersonalInfo.Email}}}{\underline{{"{"}}{{escape .PersonalInfo.Email}}{{"}"}}}{{end}}{{if .PersonalInfo.LinkedIn}} $|$ \href{{"{"}}{{.PersonalInfo.LinkedIn}}{{"}"}}{\underline{{"{"}}{{escape .PersonalInfo.LinkedIn}}{{"}"}}}{{end}}{{if .PersonalInfo.GitHub}} $|$ \href{{"{"}}{{.PersonalInfo.GitHub}}{{"}"}}{\underline{{"{"}}{{escape .PersonalInfo.GitHub}}{{"}"}}}{{end}}
\end{center}
{{if .Education}}
\section{Education}
\resumeSubHeadingListStart
{{- range .Education}}
  \resumeSubheading
    {{"{"}}{{escape .Institution}}{{"}"}}{{"{"}}{{escape .Location}}{{"}"}}
    {{"{"}}{{escape .Degree}}{{"}"}}{{"{"}}{{escape .Dates}}{{"}"}}
{{- end}}
\resumeSubHeadingListEnd
{{end}}{{if .Experience}}
\section{Experience}
\resumeSubHeadingListStart
{{- range .Experience}}
  \resumeSubheading
    {{"{"}}{{escape .Title}}{{"}"}}{{"{"}}{{escape .Dates}}{{"}"}}
    {{"{"}}{{escape .Company}}{{"}"}}{{"{"}}{{escape .Location}}{{"}"}}
{{- if .Bullets}}
  \resumeItemListStart
{{- range .Bullets}}
    \resumeItem{{"{"}}{{escape .}}{{"}"}}
{{- end}}
  \resumeItemListEnd
{{- end}}
{{- end}}
\resumeSubHeadingListEnd
{{end}}{{if .Projects}}
\section{Projects}
\resumeSubHeadingListStart
{{- range .Projects}}
  \resumeProjectHeading
    {\textbf{{"{"}}{{escape .Name}}{{"}"}}{{if .Technologies}} $|$ \emph{{"{"}}{{escape .Technologies}}{{"}"}}{{end}}}{{"{"}}{{escape .Dates}}{{"}"}}
{{- if .Bullets}}
  \resumeItemListStart
{{- range .Bullets}}
    \resumeItem{{"{"}}{{escape .}}{{"}"}}
{{- end}}
  \resumeItemListEnd
{{- end}}
{{- end}}
\resumeSubHeadingListEnd
{{end}}{{if .HasSkills}}
\section{Technical Skills}
\begin{itemize}[leftmargin=0.15in, label={}]
  \small{\item{
{{- if .Skills.Languages}}
    \textbf{Languages}{: {{join .Skills.Languages}}} \\
{{- end}}
{{- if .Skills.Frameworks}}
    \textbf{Frameworks}{: {{join .Skills.Frameworks}}} \\
{{- end}}
{{- if .Skills.Tools}}
    \textbf{Developer Tools}{: {{join .Skills.Tools}}} \\
{{- end}}
{{- if .Skills.Libraries}}
    \textbf{Libraries}{: {{join .Skills.Libraries}}}
{{- end}}
  }}
\end{itemize}
{{end}}`))

// builderData wraps ResumeContent with the derived flags the template
// needs.
type builderData struct {
	types.ResumeContent
	HasSkills bool
}

// Build typesets structured resume content into a complete document.
// Placeholder fields and bullets are dropped first; content with nothing
// renderable left is a BuildError.
func Build(content *types.ResumeContent) (string, error) {
	if content == nil {
		return "", &BuildError{Message: "no content"}
	}

	sanitized := sanitize(*content)
	if sanitized.Empty() {
		return "", &BuildError{Message: "no renderable sections after sanitization"}
	}
	if sanitized.PersonalInfo.Name == "" {
		return "", &BuildError{Message: "missing candidate name"}
	}

	data := builderData{
		ResumeContent: sanitized,
		HasSkills: len(sanitized.Skills.Languages) > 0 || len(sanitized.Skills.Frameworks) > 0 ||
			len(sanitized.Skills.Tools) > 0 || len(sanitized.Skills.Libraries) > 0,
	}

	var sb strings.Builder
	if err := bodyTemplate.Execute(&sb, data); err != nil {
		return "", &BuildError{Message: "template execution failed", Cause: err}
	}
	return WrapInTemplate(sb.String()), nil
}

// sanitize removes placeholder text and empty entries from a copy of the
// content.
func sanitize(c types.ResumeContent) types.ResumeContent {
	c.PersonalInfo.Name = cleanField(c.PersonalInfo.Name)
	c.PersonalInfo.Email = cleanField(c.PersonalInfo.Email)
	c.PersonalInfo.Phone = cleanField(c.PersonalInfo.Phone)
	c.PersonalInfo.LinkedIn = cleanField(c.PersonalInfo.LinkedIn)
	c.PersonalInfo.GitHub = cleanField(c.PersonalInfo.GitHub)
	c.PersonalInfo.Website = cleanField(c.PersonalInfo.Website)
	c.Summary = cleanField(c.Summary)

	var education []types.Education
	for _, e := range c.Education {
		e.Institution = cleanField(e.Institution)
		e.Degree = cleanField(e.Degree)
		if e.Institution == "" && e.Degree == "" {
			continue
		}
		education = append(education, e)
	}
	c.Education = education

	var experience []types.Experience
	for _, e := range c.Experience {
		e.Title = cleanField(e.Title)
		e.Company = cleanField(e.Company)
		e.Bullets = cleanBullets(e.Bullets)
		if e.Title == "" && e.Company == "" {
			continue
		}
		experience = append(experience, e)
	}
	c.Experience = experience

	var projects []types.Project
	for _, p := range c.Projects {
		p.Name = cleanField(p.Name)
		p.Bullets = cleanBullets(p.Bullets)
		if p.Name == "" {
			continue
		}
		projects = append(projects, p)
	}
	c.Projects = projects

	c.Skills.Languages = cleanBullets(c.Skills.Languages)
	c.Skills.Frameworks = cleanBullets(c.Skills.Frameworks)
	c.Skills.Tools = cleanBullets(c.Skills.Tools)
	c.Skills.Libraries = cleanBullets(c.Skills.Libraries)

	return c
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if placeholderValues[strings.ToLower(s)] {
		return ""
	}
	return s
}

func cleanBullets(items []string) []string {
	var out []string
	for _, item := range items {
		if cleaned := cleanField(item); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
