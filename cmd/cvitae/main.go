// Package main provides the cvitae command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvitae",
	Short: "AI resume tailoring pipeline",
	Long:  "cvitae analyzes job postings, tailors a master resume toward them, renders LaTeX, and exports PDF or image artifacts through the compiler service.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
