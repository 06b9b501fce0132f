package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cvitae/cvitae/internal/tailoring"
	"github.com/cvitae/cvitae/internal/types"
)

func TestPrintJobAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobAnalysis(&types.JobAnalysis{
		JobTitle:        "Senior Engineer",
		CompanyName:     "Acme Corp",
		ExperienceLevel: "Senior",
		Industry:        "Technology",
		AnalysisSource:  types.AnalysisSourceAI,
		RequiredSkills:  []string{"Go", "Kubernetes"},
		PreferredSkills: []string{"Rust"},
		PrimaryKeywords: []string{"backend", "microservices"},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB ANALYSIS")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Rust")
	assert.Contains(t, output, "backend, microservices")
}

func TestPrintJobAnalysis_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobAnalysis(&types.JobAnalysis{
		JobTitle:       "Engineer",
		RequiredSkills: []string{"a", "b", "c", "d", "e", "f", "g"},
	})

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintJobAnalysis_NilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintScoreBreakdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreBreakdown(tailoring.ScoreBreakdown{
		RequiredSkills:  1.0,
		PreferredSkills: 0.5,
		Keywords:        0.25,
		Quantification:  0.0,
		Total:           0.55,
	})
	output := buf.String()

	assert.Contains(t, output, "ATS SCORE")
	assert.Contains(t, output, "100%")
	assert.Contains(t, output, "0.55")
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(&types.TailoringResult{
		ATSScore:   0.72,
		TokensUsed: 650,
		Sections: []types.Section{
			{Name: "SUMMARY", Source: types.SectionParsed},
			{Name: "EXPERIENCE", Source: types.SectionParsed},
		},
		FallbackDocument: true,
	})
	output := buf.String()

	assert.Contains(t, output, "RUN SUMMARY")
	assert.Contains(t, output, "0.72")
	assert.Contains(t, output, "650")
	assert.Contains(t, output, "SUMMARY")
	assert.Contains(t, output, "fell back")
}

func TestScoreBar_Bounds(t *testing.T) {
	assert.Equal(t, strings.Repeat("█", 10), scoreBar(1.5))
	assert.Equal(t, strings.Repeat("░", 10), scoreBar(-0.5))
	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("░", 5), scoreBar(0.5))
}
