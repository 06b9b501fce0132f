// Package types defines the data structures exchanged between pipeline stages.
package types

// Analysis source values recorded on a JobAnalysis.
const (
	AnalysisSourceAI       = "ai"
	AnalysisSourceFallback = "fallback"
)

// JobAnalysis is the structured breakdown of a job posting produced by the
// job analyzer, either from the LLM or from the local keyword fallback.
type JobAnalysis struct {
	JobTitle              string             `json:"jobTitle"`
	CompanyName           string             `json:"companyName"`
	RequiredSkills        []string           `json:"requiredSkills"`
	PreferredSkills       []string           `json:"preferredSkills"`
	Responsibilities      []string           `json:"responsibilities"`
	Qualifications        []string           `json:"qualifications"`
	PrimaryKeywords       []string           `json:"primaryKeywords"`
	IndustryTerms         []string           `json:"industryTerms"`
	ExperienceLevel       string             `json:"experienceLevel"`
	Industry              string             `json:"industry"`
	SkillPriorityScores   map[string]float64 `json:"skillPriorityScores,omitempty"`
	OverallMatchPotential float64            `json:"overallMatchPotential,omitempty"`
	AnalysisSource        string             `json:"analysisSource"`
}

// FromFallback reports whether the analysis was produced by the local
// keyword scan rather than the LLM.
func (a *JobAnalysis) FromFallback() bool {
	return a.AnalysisSource == AnalysisSourceFallback
}
