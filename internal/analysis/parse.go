package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cvitae/cvitae/internal/llm"
	"github.com/cvitae/cvitae/internal/types"
)

// ParseError indicates the LLM response could not be turned into a
// JobAnalysis.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse analysis: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse analysis: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// parseAnalysis extracts a JobAnalysis from raw LLM output. Markdown fences
// and surrounding narration are stripped before unmarshalling.
func parseAnalysis(content string) (*types.JobAnalysis, error) {
	cleaned := llm.CleanJSONBlock(content)
	if !strings.HasPrefix(strings.TrimSpace(cleaned), "{") {
		cleaned = llm.ExtractJSONObject(cleaned)
	}
	if cleaned == "" {
		return nil, &ParseError{Message: "no JSON object in response"}
	}

	var analysis types.JobAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, &ParseError{Message: "invalid JSON", Cause: err}
	}
	return &analysis, nil
}

// normalize tidies an analysis in place: trims and dedupes the skill lists,
// lowercases priority-score keys, clamps scores to [0,1], and fills the
// defaulted scalar fields.
func normalize(a *types.JobAnalysis) {
	a.RequiredSkills = dedupe(a.RequiredSkills)
	a.PreferredSkills = dedupe(a.PreferredSkills)
	a.Responsibilities = dedupe(a.Responsibilities)
	a.Qualifications = dedupe(a.Qualifications)
	a.PrimaryKeywords = dedupe(a.PrimaryKeywords)
	a.IndustryTerms = dedupe(a.IndustryTerms)

	if len(a.SkillPriorityScores) > 0 {
		scores := make(map[string]float64, len(a.SkillPriorityScores))
		for skill, score := range a.SkillPriorityScores {
			scores[strings.ToLower(strings.TrimSpace(skill))] = clamp01(score)
		}
		a.SkillPriorityScores = scores
	}
	a.OverallMatchPotential = clamp01(a.OverallMatchPotential)

	if a.ExperienceLevel == "" {
		a.ExperienceLevel = DefaultExperienceLevel
	}
	if a.Industry == "" {
		a.Industry = DefaultIndustry
	}
}

// dedupe trims entries, drops empties, and removes case-insensitive
// duplicates while preserving order.
func dedupe(items []string) []string {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
