// Package analysis turns raw job postings into structured JobAnalysis
// values, using the LLM when available and a local keyword scan otherwise.
package analysis

import (
	"context"
	"log"

	"github.com/cvitae/cvitae/internal/llm"
	"github.com/cvitae/cvitae/internal/prompts"
	"github.com/cvitae/cvitae/internal/types"
)

// Analyzer produces job analyses.
type Analyzer struct {
	client llm.Client
}

// New creates an Analyzer backed by the given completion client.
func New(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze breaks a job posting into structured hiring signals. When the
// gateway is unavailable or its output cannot be parsed, the local fallback
// is used instead; Analyze itself never fails on provider problems. The
// returned usage is zero on the fallback path.
func (a *Analyzer) Analyze(ctx context.Context, posting, jobTitle, companyName string) (*types.JobAnalysis, llm.Usage) {
	system := prompts.MustGet("analysis.json", "system")
	user := prompts.Format(prompts.MustGet("analysis.json", "user"), map[string]string{
		"JobPosting":  posting,
		"JobTitle":    jobTitle,
		"CompanyName": companyName,
	})

	result := a.client.Complete(ctx, llm.JobAnalysisRequest(system, user))
	if !result.Success {
		log.Printf("analysis: gateway unavailable (%s), using keyword fallback", result.ErrorReason)
		return Fallback(posting, jobTitle, companyName), llm.Usage{}
	}

	parsed, err := parseAnalysis(result.Content)
	if err != nil {
		log.Printf("analysis: could not parse LLM response (%v), using keyword fallback", err)
		return Fallback(posting, jobTitle, companyName), result.Usage
	}

	if parsed.JobTitle == "" {
		parsed.JobTitle = jobTitle
	}
	if parsed.CompanyName == "" {
		parsed.CompanyName = companyName
	}
	parsed.AnalysisSource = types.AnalysisSourceAI
	normalize(parsed)
	return parsed, result.Usage
}
