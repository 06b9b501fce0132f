package tailoring

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/cvitae/cvitae/internal/analysis"
	"github.com/cvitae/cvitae/internal/latex"
	"github.com/cvitae/cvitae/internal/llm"
	"github.com/cvitae/cvitae/internal/prompts"
	"github.com/cvitae/cvitae/internal/schemas"
	"github.com/cvitae/cvitae/internal/types"
)

// Options control a tailoring run.
type Options struct {
	JobTitle        string
	CompanyName     string
	TargetLength    string
	EmphasizeSkills bool
	IncludeSummary  bool
	Sections        SectionToggles
}

// DefaultOptions returns the standard tailoring options.
func DefaultOptions() Options {
	return Options{
		TargetLength:    "1 page",
		EmphasizeSkills: true,
		IncludeSummary:  true,
		Sections:        AllSections(),
	}
}

// Engine runs the tailoring pipeline.
type Engine struct {
	client   llm.Client
	analyzer *analysis.Analyzer
}

// NewEngine creates an Engine on top of the given completion client.
func NewEngine(client llm.Client) *Engine {
	return &Engine{
		client:   client,
		analyzer: analysis.New(client),
	}
}

// Analyzer returns the engine's job analyzer, for callers that want
// analysis without a full tailoring run.
func (e *Engine) Analyzer() *analysis.Analyzer {
	return e.analyzer
}

// Tailor runs the full pipeline: analyze the posting, rewrite the resume
// content, extract structure, generate LaTeX, and score the result.
// Provider failures degrade stage by stage (fallback analysis, passthrough
// content, fallback document) instead of failing the run; the result is
// always usable.
func (e *Engine) Tailor(ctx context.Context, masterResume, posting string, opts Options) (*types.TailoringResult, error) {
	if opts.TargetLength == "" {
		opts.TargetLength = "1 page"
	}

	result := &types.TailoringResult{Success: true}

	jobAnalysis, usage := e.analyzer.Analyze(ctx, posting, opts.JobTitle, opts.CompanyName)
	result.JobAnalysis = jobAnalysis
	result.TokensUsed += usage.TotalTokens

	sections, tokens := e.tailorContent(ctx, masterResume, posting, jobAnalysis, opts)
	sections = filterSections(sections, opts.Sections)
	if !opts.IncludeSummary {
		sections = dropSection(sections, "SUMMARY")
	}
	result.TokensUsed += tokens
	result.Sections = sections
	result.TailoredContent = JoinSections(sections)
	if result.TailoredContent == "" {
		result.TailoredContent = masterResume
	}

	latexCode, tokens, usedFallback, selected := e.generateLatex(ctx, result.TailoredContent, masterResume, opts.Sections)
	result.LatexCode = latexCode
	result.TokensUsed += tokens
	result.FallbackDocument = usedFallback

	if len(selected) == 0 {
		selected = experienceEntries(sections)
	}
	result.SelectedExperiences = selected
	result.SelectedSkills = MatchedSkills(result.TailoredContent, jobAnalysis)

	breakdown := Score(result.TailoredContent, jobAnalysis)
	result.ATSScore = breakdown.Total
	result.OptimizationMetrics = breakdown.Metrics()

	return result, nil
}

// tailorContent asks the LLM to rewrite the resume toward the analysis.
// On gateway failure the master resume passes through untouched, tagged
// heuristic.
func (e *Engine) tailorContent(ctx context.Context, masterResume, posting string, jobAnalysis *types.JobAnalysis, opts Options) ([]types.Section, int) {
	analysisJSON, err := json.Marshal(jobAnalysis)
	if err != nil {
		analysisJSON = []byte("{}")
	}

	system := prompts.Format(prompts.MustGet("tailoring.json", "system"), map[string]string{
		"TargetLength": opts.TargetLength,
	})
	if opts.EmphasizeSkills {
		system += "\nPut the required skills the candidate has near the top of each section."
	}
	user := prompts.Format(prompts.MustGet("tailoring.json", "user"), map[string]string{
		"Analysis":     string(analysisJSON),
		"JobPosting":   posting,
		"MasterResume": masterResume,
	})

	completion := e.client.Complete(ctx, llm.TailoringRequest(system, user))
	if !completion.Success {
		log.Printf("tailoring: gateway unavailable (%s), passing master resume through", completion.ErrorReason)
		return []types.Section{{
			Name:    "EXPERIENCE",
			Content: strings.TrimSpace(masterResume),
			Source:  types.SectionHeuristic,
		}}, 0
	}

	return ExtractSections(completion.Content), completion.Usage.TotalTokens
}

// generateLatex produces the LaTeX document for tailored content. The
// structured extraction path is tried first; the legacy direct conversion
// path second; the static fallback document last. The returned list names
// the experience entries the structured path typeset, empty on the other
// paths.
func (e *Engine) generateLatex(ctx context.Context, tailoredContent, masterResume string, toggles SectionToggles) (string, int, bool, []string) {
	tokens := 0

	code, used, selected, err := e.structuredLatex(ctx, tailoredContent, toggles)
	tokens += used
	if err == nil {
		return code, tokens, false, selected
	}
	log.Printf("tailoring: structured extraction failed (%v), trying direct conversion", err)

	code, used, err = e.legacyLatex(ctx, tailoredContent)
	tokens += used
	if err == nil {
		return code, tokens, false, nil
	}
	log.Printf("tailoring: direct conversion failed (%v), using fallback document", err)

	return latex.FallbackDocument(guessName(masterResume)), tokens, true, nil
}

// structuredLatex extracts ResumeContent JSON, validates it against the
// resume schema, filters disabled sections, and builds the document
// programmatically.
func (e *Engine) structuredLatex(ctx context.Context, content string, toggles SectionToggles) (string, int, []string, error) {
	system := prompts.MustGet("extraction.json", "system")
	user := prompts.Format(prompts.MustGet("extraction.json", "user"), map[string]string{
		"Content": content,
	})

	completion := e.client.Complete(ctx, llm.ExtractionRequest(system, user))
	if !completion.Success {
		return "", 0, nil, &StageError{Stage: "extraction", Message: string(completion.ErrorReason)}
	}
	tokens := completion.Usage.TotalTokens

	cleaned := llm.CleanJSONBlock(completion.Content)
	if !strings.HasPrefix(strings.TrimSpace(cleaned), "{") {
		cleaned = llm.ExtractJSONObject(cleaned)
	}
	if cleaned == "" {
		return "", tokens, nil, &StageError{Stage: "extraction", Message: "no JSON object in response"}
	}

	if err := schemas.ValidateResumeContent(cleaned); err != nil {
		return "", tokens, nil, &StageError{Stage: "extraction", Message: "schema validation failed", Cause: err}
	}

	var resumeContent types.ResumeContent
	if err := json.Unmarshal([]byte(cleaned), &resumeContent); err != nil {
		return "", tokens, nil, &StageError{Stage: "extraction", Message: "invalid JSON", Cause: err}
	}
	applyToggles(&resumeContent, toggles)

	code, err := latex.Build(&resumeContent)
	if err != nil {
		return "", tokens, nil, &StageError{Stage: "build", Message: "builder rejected content", Cause: err}
	}

	selected := make([]string, 0, len(resumeContent.Experience))
	for _, entry := range resumeContent.Experience {
		label := strings.TrimSpace(entry.Title)
		if company := strings.TrimSpace(entry.Company); company != "" {
			if label == "" {
				label = company
			} else {
				label += ", " + company
			}
		}
		if label != "" {
			selected = append(selected, label)
		}
	}
	return code, tokens, selected, nil
}

// legacyLatex asks the LLM for a complete document and runs it through the
// cleaning pipeline.
func (e *Engine) legacyLatex(ctx context.Context, content string) (string, int, error) {
	system := prompts.MustGet("latex.json", "system")
	user := prompts.Format(prompts.MustGet("latex.json", "user"), map[string]string{
		"Name":    guessName(content),
		"Content": content,
	})

	completion := e.client.Complete(ctx, llm.LatexConversionRequest(system, user))
	if !completion.Success {
		return "", 0, &StageError{Stage: "conversion", Message: string(completion.ErrorReason)}
	}

	doc := latex.Process(completion.Content)
	if doc.State != latex.StateValid {
		return "", completion.Usage.TotalTokens, &StageError{Stage: "conversion", Message: doc.Reason}
	}
	return doc.Cleaned, completion.Usage.TotalTokens, nil
}

// guessName takes the first short non-empty line as the candidate name.
// Resumes almost always open with the name; anything long is a sentence,
// not a name.
func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) <= 60 && !strings.ContainsAny(line, ":@") {
			return line
		}
		break
	}
	return ""
}

func dropSection(sections []types.Section, name string) []types.Section {
	out := sections[:0]
	for _, s := range sections {
		if s.Name != name {
			out = append(out, s)
		}
	}
	return out
}
