package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cvitae/cvitae/internal/export"
	"github.com/cvitae/cvitae/internal/ingestion"
	"github.com/cvitae/cvitae/internal/llm"
	"github.com/cvitae/cvitae/internal/observability"
	"github.com/cvitae/cvitae/internal/tailoring"
)

var tailorCommand = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a master resume toward a job posting",
	Long:  "Tailor a master resume toward a job posting and write the resulting LaTeX document. With --pdf the document is also compiled through the compiler service.",
	RunE:  runTailor,
}

var (
	tailorResume     string
	tailorJobFile    string
	tailorJobURL     string
	tailorTitle      string
	tailorCompany    string
	tailorOut        string
	tailorPDF        bool
	tailorNoSummary  bool
	tailorUseBrowser bool
	tailorVerbose    bool
)

func init() {
	tailorCommand.Flags().StringVar(&tailorResume, "resume", "", "Path to the master resume file (required)")
	tailorCommand.Flags().StringVar(&tailorJobFile, "job-file", "", "Path to a file containing the job posting")
	tailorCommand.Flags().StringVar(&tailorJobURL, "job-url", "", "URL of the job posting")
	tailorCommand.Flags().StringVar(&tailorTitle, "title", "", "Job title hint")
	tailorCommand.Flags().StringVar(&tailorCompany, "company", "", "Company name hint")
	tailorCommand.Flags().StringVarP(&tailorOut, "out", "o", "resume.tex", "Output path for the LaTeX document")
	tailorCommand.Flags().BoolVar(&tailorPDF, "pdf", false, "Also compile a PDF via the compiler service")
	tailorCommand.Flags().BoolVar(&tailorNoSummary, "no-summary", false, "Omit the professional summary section")
	tailorCommand.Flags().BoolVar(&tailorUseBrowser, "use-browser", false, "Use a headless browser to fetch the posting")
	tailorCommand.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Verbose output")
	_ = tailorCommand.MarkFlagRequired("resume")
	rootCmd.AddCommand(tailorCommand)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	masterResume, err := ingestion.IngestFromFile(tailorResume)
	if err != nil {
		return err
	}
	posting, err := loadJobPosting(cmd.Context(), tailorJobFile, tailorJobURL, tailorUseBrowser, tailorVerbose)
	if err != nil {
		return err
	}

	opts := tailoring.DefaultOptions()
	opts.JobTitle = tailorTitle
	opts.CompanyName = tailorCompany
	opts.IncludeSummary = !tailorNoSummary

	client := llm.NewGroqClient(llm.ConfigFromEnv())
	engine := tailoring.NewEngine(client)

	result, err := engine.Tailor(cmd.Context(), masterResume, posting, opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(tailorOut, []byte(result.LatexCode), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tailorOut, err)
	}
	fmt.Printf("Wrote %s\n", tailorOut)

	printer := observability.NewPrinter(os.Stdout)
	if tailorVerbose {
		printer.PrintJobAnalysis(result.JobAnalysis)
		printer.PrintScoreBreakdown(tailoring.Score(result.TailoredContent, result.JobAnalysis))
	}
	printer.PrintRunSummary(result)

	if tailorPDF {
		return compileTailoredPDF(cmd, result.LatexCode)
	}
	return nil
}

func compileTailoredPDF(cmd *cobra.Command, latexCode string) error {
	serviceURL := os.Getenv("LATEX_SERVICE_URL")
	if serviceURL == "" {
		return fmt.Errorf("--pdf requires LATEX_SERVICE_URL to be set")
	}

	gateway := export.NewGateway(serviceURL, export.DefaultMaxConcurrent, nil)
	artifact, err := gateway.CompilePDF(cmd.Context(), latexCode, export.PDFOptions{
		Name: strings.TrimSuffix(tailorOut, ".tex"),
	})
	if err != nil {
		return err
	}

	pdfPath := strings.TrimSuffix(tailorOut, ".tex") + ".pdf"
	if err := os.WriteFile(pdfPath, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", pdfPath, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", pdfPath, len(artifact.Data))
	return nil
}
