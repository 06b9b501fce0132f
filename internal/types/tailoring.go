package types

// Section source values. Parsed means the section came from a labeled block
// in the LLM response, heuristic means it was recovered from unlabeled text,
// and defaulted means the canned default was substituted.
const (
	SectionParsed    = "parsed"
	SectionHeuristic = "heuristic"
	SectionDefaulted = "defaulted"
)

// Section is one tailored prose section together with how it was obtained.
type Section struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// TailoringResult is the outcome of a full tailoring run. ATSScore is on a
// [0,1] scale; the HTTP layer reports it as 0..100.
type TailoringResult struct {
	Success             bool               `json:"success"`
	TailoredContent     string             `json:"tailoredContent"`
	LatexCode           string             `json:"latexCode"`
	JobAnalysis         *JobAnalysis       `json:"jobAnalysis,omitempty"`
	ATSScore            float64            `json:"atsCompatibilityScore"`
	Sections            []Section          `json:"sections,omitempty"`
	SelectedExperiences []string           `json:"selectedExperiences,omitempty"`
	SelectedSkills      []string           `json:"selectedSkills,omitempty"`
	OptimizationMetrics map[string]float64 `json:"optimizationMetrics,omitempty"`
	TokensUsed          int                `json:"tokensUsed"`
	FallbackDocument    bool               `json:"fallbackDocument"`
	ErrorMessage        string             `json:"errorMessage,omitempty"`
}
