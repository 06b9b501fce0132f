package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnalysisJSON = `{
	"jobTitle": "Backend Engineer",
	"companyName": "Acme",
	"requiredSkills": ["Go", " go ", "PostgreSQL", ""],
	"preferredSkills": ["Kubernetes"],
	"primaryKeywords": ["microservices", "microservices"],
	"experienceLevel": "Senior",
	"industry": "Fintech",
	"skillPriorityScores": {" Go ": 1.5, "PostgreSQL": 0.8},
	"overallMatchPotential": 0.75
}`

func TestParseAnalysis_Plain(t *testing.T) {
	analysis, err := parseAnalysis(sampleAnalysisJSON)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", analysis.JobTitle)
	assert.Equal(t, "Acme", analysis.CompanyName)
}

func TestParseAnalysis_MarkdownFence(t *testing.T) {
	analysis, err := parseAnalysis("```json\n" + sampleAnalysisJSON + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", analysis.JobTitle)
}

func TestParseAnalysis_SurroundingNarration(t *testing.T) {
	analysis, err := parseAnalysis("Sure! Here is the analysis:\n" + sampleAnalysisJSON + "\nHope that helps.")
	require.NoError(t, err)
	assert.Equal(t, "Acme", analysis.CompanyName)
}

func TestParseAnalysis_NotJSON(t *testing.T) {
	_, err := parseAnalysis("I cannot analyze that posting.")
	assert.Error(t, err)
}

func TestNormalize_DedupesAndClamps(t *testing.T) {
	analysis, err := parseAnalysis(sampleAnalysisJSON)
	require.NoError(t, err)

	normalize(analysis)

	assert.Equal(t, []string{"Go", "PostgreSQL"}, analysis.RequiredSkills)
	assert.Equal(t, []string{"microservices"}, analysis.PrimaryKeywords)
	assert.Equal(t, 1.0, analysis.SkillPriorityScores["go"])
	assert.Equal(t, 0.8, analysis.SkillPriorityScores["postgresql"])
	assert.Equal(t, 0.75, analysis.OverallMatchPotential)
}

func TestNormalize_FillsDefaults(t *testing.T) {
	analysis, err := parseAnalysis(`{"jobTitle": "X"}`)
	require.NoError(t, err)

	normalize(analysis)

	assert.Equal(t, DefaultExperienceLevel, analysis.ExperienceLevel)
	assert.Equal(t, DefaultIndustry, analysis.Industry)
}
