package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cvitae/cvitae/internal/export"
	"github.com/cvitae/cvitae/internal/latex"
)

var exportCommand = &cobra.Command{
	Use:   "export",
	Short: "Compile a LaTeX document to PDF or an image",
	Long:  "Compile an existing LaTeX document through the compiler service and write the resulting artifact. Supported formats: pdf, png, jpg.",
	RunE:  runExport,
}

var (
	exportTex    string
	exportFormat string
	exportOut    string
	exportDPI    int
)

func init() {
	exportCommand.Flags().StringVar(&exportTex, "tex", "", "Path to the LaTeX document (required)")
	exportCommand.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: pdf, png, or jpg")
	exportCommand.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (defaults to the .tex name with the format extension)")
	exportCommand.Flags().IntVar(&exportDPI, "dpi", export.DefaultDPI, "Image resolution in DPI")
	_ = exportCommand.MarkFlagRequired("tex")
	rootCmd.AddCommand(exportCommand)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(exportTex)
	if err != nil {
		return err
	}

	processed := latex.Process(string(source))
	if processed.State == latex.StateMalformed {
		return fmt.Errorf("%s does not look like a LaTeX document", exportTex)
	}

	serviceURL := os.Getenv("LATEX_SERVICE_URL")
	if serviceURL == "" {
		return fmt.Errorf("LATEX_SERVICE_URL must be set")
	}
	gateway := export.NewGateway(serviceURL, export.DefaultMaxConcurrent, nil)

	name := strings.TrimSuffix(filepath.Base(exportTex), ".tex")

	var artifact *export.Artifact
	switch format {
	case export.FormatPDF:
		artifact, err = gateway.CompilePDF(cmd.Context(), processed.Cleaned, export.PDFOptions{Name: name})
	case export.FormatPNG, export.FormatJPEG:
		artifact, err = gateway.CompileImage(cmd.Context(), processed.Cleaned, export.ImageOptions{
			Name:   name,
			Format: format,
			DPI:    exportDPI,
		})
	default:
		return fmt.Errorf("format %s cannot be compiled", format)
	}
	if err != nil {
		var compileErr *export.CompileError
		if errors.As(err, &compileErr) {
			for _, hint := range compileErr.Hints {
				fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
			}
		}
		return err
	}

	outPath := exportOut
	if outPath == "" {
		outPath = name + "." + format.Extension()
	}
	if err := os.WriteFile(outPath, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", outPath, len(artifact.Data))
	return nil
}
