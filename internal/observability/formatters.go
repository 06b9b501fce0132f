// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/cvitae/cvitae/internal/tailoring"
	"github.com/cvitae/cvitae/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobAnalysis outputs a human-readable summary of the job analysis.
func (p *Printer) PrintJobAnalysis(analysis *types.JobAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Role:     %s\n", analysis.JobTitle))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", analysis.CompanyName))
	sb.WriteString(fmt.Sprintf("Level:    %s\n", analysis.ExperienceLevel))
	sb.WriteString(fmt.Sprintf("Industry: %s\n", analysis.Industry))
	sb.WriteString(fmt.Sprintf("Source:   %s\n", analysis.AnalysisSource))
	sb.WriteString("\n")

	if len(analysis.RequiredSkills) > 0 {
		sb.WriteString("Required Skills:\n")
		count := min(len(analysis.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", analysis.RequiredSkills[i]))
		}
		if len(analysis.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.RequiredSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(analysis.PreferredSkills) > 0 {
		sb.WriteString("Preferred Skills:\n")
		count := min(len(analysis.PreferredSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", analysis.PreferredSkills[i]))
		}
		if len(analysis.PreferredSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.PreferredSkills)-3))
		}
		sb.WriteString("\n")
	}

	if len(analysis.PrimaryKeywords) > 0 {
		sb.WriteString("Keywords: ")
		count := min(len(analysis.PrimaryKeywords), maxItemsToShow)
		sb.WriteString(strings.Join(analysis.PrimaryKeywords[:count], ", "))
		sb.WriteString("\n")
	}

	p.printBox("JOB ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreBreakdown outputs the ATS score components.
func (p *Printer) PrintScoreBreakdown(breakdown tailoring.ScoreBreakdown) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Required skills:  %s %.0f%%\n", scoreBar(breakdown.RequiredSkills), breakdown.RequiredSkills*100))
	sb.WriteString(fmt.Sprintf("Preferred skills: %s %.0f%%\n", scoreBar(breakdown.PreferredSkills), breakdown.PreferredSkills*100))
	sb.WriteString(fmt.Sprintf("Keywords:         %s %.0f%%\n", scoreBar(breakdown.Keywords), breakdown.Keywords*100))
	sb.WriteString(fmt.Sprintf("Quantification:   %s %.0f%%\n", scoreBar(breakdown.Quantification), breakdown.Quantification*100))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall ATS score: %.2f\n", breakdown.Total))

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the outcome of a tailoring run.
func (p *Printer) PrintRunSummary(result *types.TailoringResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ATS score:   %.2f\n", result.ATSScore))
	sb.WriteString(fmt.Sprintf("Tokens used: %d\n", result.TokensUsed))
	sb.WriteString(fmt.Sprintf("Sections:    %d\n", len(result.Sections)))

	for _, section := range result.Sections {
		sb.WriteString(fmt.Sprintf("  • %-12s (%s)\n", section.Name, section.Source))
	}

	if result.FallbackDocument {
		sb.WriteString("\nLaTeX generation fell back to the minimal document.\n")
	}

	p.printBox("RUN SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// scoreBar renders a ten-segment bar for a 0..1 score.
func scoreBar(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	filled := int(score*10 + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
