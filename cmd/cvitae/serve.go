package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cvitae/cvitae/internal/config"
	"github.com/cvitae/cvitae/internal/debug"
	"github.com/cvitae/cvitae/internal/export"
	"github.com/cvitae/cvitae/internal/llm"
	"github.com/cvitae/cvitae/internal/server"
	"github.com/cvitae/cvitae/internal/store"
	"github.com/cvitae/cvitae/internal/tailoring"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

var servePort int

func init() {
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to PORT env var)")
	rootCmd.AddCommand(serveCommand)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, warning := range cfg.Warnings() {
		log.Printf("WARNING: %s", warning)
	}

	// Mirror all log output into the admin ring buffer.
	ring := debug.NewRing(debug.DefaultRingCapacity)
	log.SetOutput(io.MultiWriter(os.Stderr, ring))

	var resumeStore store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		resumeStore = pg
	} else {
		resumeStore = store.NewMemory()
	}

	client := llm.NewGroqClient(cfg.LLM)
	sessions := debug.NewStore()

	downloads, err := export.NewDownloadStore()
	if err != nil {
		return err
	}

	srv := server.New(cfg.Port, server.Deps{
		Store:     resumeStore,
		Engine:    tailoring.NewEngine(client),
		LLMClient: client,
		Gateway:   export.NewGateway(cfg.CompilerURL, int64(cfg.MaxConcurrentCompiles), sessions),
		Downloads: downloads,
		Sessions:  sessions,
		Ring:      ring,
	})
	return srv.Start()
}
