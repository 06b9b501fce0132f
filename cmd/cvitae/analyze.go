package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cvitae/cvitae/internal/analysis"
	"github.com/cvitae/cvitae/internal/ingestion"
	"github.com/cvitae/cvitae/internal/llm"
	"github.com/cvitae/cvitae/internal/observability"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job posting",
	Long:  "Analyze a job posting from a file or URL and print the extracted hiring signals: required and preferred skills, keywords, experience level, and industry.",
	RunE:  runAnalyze,
}

var (
	analyzeJobFile    string
	analyzeJobURL     string
	analyzeTitle      string
	analyzeCompany    string
	analyzeUseBrowser bool
	analyzeVerbose    bool
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeJobFile, "job-file", "", "Path to a file containing the job posting")
	analyzeCommand.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL of the job posting")
	analyzeCommand.Flags().StringVar(&analyzeTitle, "title", "", "Job title hint")
	analyzeCommand.Flags().StringVar(&analyzeCompany, "company", "", "Company name hint")
	analyzeCommand.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use a headless browser to fetch the posting")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Verbose output")
	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	posting, err := loadJobPosting(cmd.Context(), analyzeJobFile, analyzeJobURL, analyzeUseBrowser, analyzeVerbose)
	if err != nil {
		return err
	}

	client := llm.NewGroqClient(llm.ConfigFromEnv())
	result, usage := analysis.New(client).Analyze(cmd.Context(), posting, analyzeTitle, analyzeCompany)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintJobAnalysis(result)
	if analyzeVerbose {
		fmt.Printf("Tokens used: %d\n", usage.TotalTokens)
	}
	return nil
}

// loadJobPosting reads a posting from a local file or fetches it from a URL,
// requiring exactly one of the two sources.
func loadJobPosting(ctx context.Context, jobFile, jobURL string, useBrowser, verbose bool) (string, error) {
	switch {
	case jobFile != "" && jobURL != "":
		return "", fmt.Errorf("use either --job-file or --job-url, not both")
	case jobFile != "":
		return ingestion.IngestFromFile(jobFile)
	case jobURL != "":
		return ingestion.IngestJobPosting(ctx, jobURL, useBrowser, verbose)
	default:
		return "", fmt.Errorf("a job posting is required: pass --job-file or --job-url")
	}
}
