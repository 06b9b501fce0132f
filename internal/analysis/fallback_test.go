package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cvitae/cvitae/internal/types"
)

func TestFallback_DetectsCommonSkills(t *testing.T) {
	posting := "We need someone strong in Go and PostgreSQL, with Docker experience."
	analysis := Fallback(posting, "Backend Engineer", "Acme")

	assert.Contains(t, analysis.RequiredSkills, "Go")
	assert.Contains(t, analysis.RequiredSkills, "PostgreSQL")
	assert.Contains(t, analysis.RequiredSkills, "Docker")
	assert.Equal(t, types.AnalysisSourceFallback, analysis.AnalysisSource)
}

func TestFallback_SeniorityFromPosting(t *testing.T) {
	analysis := Fallback("Senior engineer wanted", "Engineer", "Acme")
	assert.Equal(t, "Senior", analysis.ExperienceLevel)
}

func TestFallback_SeniorityFromTitle(t *testing.T) {
	analysis := Fallback("Engineer wanted", "Junior Engineer", "Acme")
	assert.Equal(t, "Entry-level", analysis.ExperienceLevel)
}

func TestFallback_DefaultsWhenNothingMatches(t *testing.T) {
	analysis := Fallback("", "Baker", "Bread Co")

	assert.Empty(t, analysis.RequiredSkills)
	assert.Equal(t, DefaultExperienceLevel, analysis.ExperienceLevel)
	assert.Equal(t, DefaultIndustry, analysis.Industry)
	assert.Equal(t, "Baker", analysis.JobTitle)
	assert.Equal(t, "Bread Co", analysis.CompanyName)
}
