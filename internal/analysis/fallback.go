package analysis

import (
	"strings"

	"github.com/cvitae/cvitae/internal/types"
)

// Defaults substituted when neither the LLM nor the posting text yields a
// value.
const (
	DefaultExperienceLevel = "Mid-level"
	DefaultIndustry        = "Technology"
)

// commonSkills is the dictionary scanned against the posting text when the
// LLM is unavailable. Matching is case-insensitive substring.
var commonSkills = []string{
	"Java", "Python", "JavaScript", "TypeScript", "Go", "Rust", "C++", "C#",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis",
	"React", "Angular", "Vue", "Node.js", "Spring", "Django",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform",
	"Git", "CI/CD", "Linux", "REST", "GraphQL", "Kafka",
	"Machine Learning", "Data Analysis", "Agile", "Scrum",
}

// fallbackKeywords are generic hiring keywords always worth matching on.
var fallbackKeywords = []string{
	"software", "development", "engineering", "team", "design",
	"testing", "deployment", "scalable", "performance",
}

// seniorityMarkers maps posting phrases to experience levels, checked in
// order so the most senior marker wins.
var seniorityMarkers = []struct {
	marker string
	level  string
}{
	{"principal", "Senior"},
	{"staff", "Senior"},
	{"senior", "Senior"},
	{"lead", "Senior"},
	{"junior", "Entry-level"},
	{"entry level", "Entry-level"},
	{"entry-level", "Entry-level"},
	{"intern", "Entry-level"},
	{"graduate", "Entry-level"},
}

// Fallback builds a JobAnalysis from the posting text alone, without the
// LLM. It scans for common skills and seniority markers and fills the rest
// with defaults. It always returns a usable analysis.
func Fallback(posting, jobTitle, companyName string) *types.JobAnalysis {
	lower := strings.ToLower(posting + " " + jobTitle)

	var required []string
	for _, skill := range commonSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			required = append(required, skill)
		}
	}

	var keywords []string
	for _, kw := range fallbackKeywords {
		if strings.Contains(lower, kw) {
			keywords = append(keywords, kw)
		}
	}

	level := DefaultExperienceLevel
	for _, m := range seniorityMarkers {
		if strings.Contains(lower, m.marker) {
			level = m.level
			break
		}
	}

	return &types.JobAnalysis{
		JobTitle:        jobTitle,
		CompanyName:     companyName,
		RequiredSkills:  required,
		PrimaryKeywords: keywords,
		ExperienceLevel: level,
		Industry:        DefaultIndustry,
		AnalysisSource:  types.AnalysisSourceFallback,
	}
}
