// Package tailoring orchestrates the resume tailoring pipeline: job
// analysis, content rewriting, structured extraction, LaTeX generation,
// and ATS scoring.
package tailoring

import (
	"regexp"
	"strings"

	"github.com/cvitae/cvitae/internal/types"
)

// ATS score component weights. They sum to 1.0.
const (
	weightRequiredSkills = 0.40
	weightPreferred      = 0.20
	weightKeywords       = 0.25
	weightQuantification = 0.15
)

// quantificationTarget is the number of quantified statements at which the
// quantification component saturates.
const quantificationTarget = 7

// quantificationPatterns match the kinds of measurable claims ATS systems
// and recruiters reward: percentages, money, durations, team sizes, and
// explicit deltas.
var quantificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$\d+[KkMmBb]?`),
	regexp.MustCompile(`(?i)\d+\s*(years?|months?)`),
	regexp.MustCompile(`(?i)\d+\s*(people|members|employees|clients)`),
	regexp.MustCompile(`(?i)(increased|decreased|improved|reduced)\s+by\s+\d+`),
}

// ScoreBreakdown carries the ATS score and its components, each in [0,1].
type ScoreBreakdown struct {
	RequiredSkills  float64 `json:"requiredSkills"`
	PreferredSkills float64 `json:"preferredSkills"`
	Keywords        float64 `json:"keywords"`
	Quantification  float64 `json:"quantification"`
	Total           float64 `json:"total"`
}

// Score computes the deterministic ATS compatibility score of resume text
// against a job analysis. The same inputs always produce the same score;
// no LLM is involved.
func Score(resumeText string, analysis *types.JobAnalysis) ScoreBreakdown {
	lower := strings.ToLower(resumeText)

	breakdown := ScoreBreakdown{
		RequiredSkills:  matchRatio(lower, analysis.RequiredSkills),
		PreferredSkills: matchRatio(lower, analysis.PreferredSkills),
		Keywords:        matchRatio(lower, analysis.PrimaryKeywords),
		Quantification:  quantificationScore(resumeText),
	}
	breakdown.Total = breakdown.RequiredSkills*weightRequiredSkills +
		breakdown.PreferredSkills*weightPreferred +
		breakdown.Keywords*weightKeywords +
		breakdown.Quantification*weightQuantification
	return breakdown
}

// Metrics exposes the breakdown as the optimization-metrics map reported
// to API clients.
func (b ScoreBreakdown) Metrics() map[string]float64 {
	return map[string]float64{
		"requiredSkills":  b.RequiredSkills,
		"preferredSkills": b.PreferredSkills,
		"keywords":        b.Keywords,
		"quantification":  b.Quantification,
		"total":           b.Total,
	}
}

// MatchedSkills lists the required and preferred skills from the analysis
// that appear in the resume text, in analysis order without duplicates.
func MatchedSkills(resumeText string, analysis *types.JobAnalysis) []string {
	if analysis == nil {
		return nil
	}
	lower := strings.ToLower(resumeText)
	seen := make(map[string]bool)
	var out []string
	for _, term := range append(append([]string{}, analysis.RequiredSkills...), analysis.PreferredSkills...) {
		key := strings.ToLower(strings.TrimSpace(term))
		if key == "" || seen[key] {
			continue
		}
		if strings.Contains(lower, key) {
			seen[key] = true
			out = append(out, term)
		}
	}
	return out
}

// matchRatio returns the fraction of terms present in the text,
// case-insensitively. An empty term list scores a neutral 0.5 rather than
// punishing the resume for information the analysis lacks.
func matchRatio(lowerText string, terms []string) float64 {
	if len(terms) == 0 {
		return 0.5
	}
	matched := 0
	for _, term := range terms {
		if strings.Contains(lowerText, strings.ToLower(term)) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// quantificationScore counts quantified statements, saturating at
// quantificationTarget.
func quantificationScore(text string) float64 {
	count := 0
	for _, pattern := range quantificationPatterns {
		count += len(pattern.FindAllString(text, -1))
	}
	if count >= quantificationTarget {
		return 1
	}
	return float64(count) / float64(quantificationTarget)
}
