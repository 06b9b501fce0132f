// Package server provides the HTTP REST API for the tailoring pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cvitae/cvitae/internal/debug"
	"github.com/cvitae/cvitae/internal/export"
	"github.com/cvitae/cvitae/internal/llm"
	"github.com/cvitae/cvitae/internal/store"
	"github.com/cvitae/cvitae/internal/tailoring"
)

// Server wires the pipeline components behind the REST API.
type Server struct {
	httpServer *http.Server
	store      store.Store
	engine     *tailoring.Engine
	llmClient  llm.Client
	gateway    *export.Gateway
	downloads  *export.DownloadStore
	sessions   *debug.Store
	ring       *debug.Ring
	validate   *validator.Validate
}

// Deps are the components the server serves. All fields are required
// except Ring and Sessions, which default to empty instances.
type Deps struct {
	Store     store.Store
	Engine    *tailoring.Engine
	LLMClient llm.Client
	Gateway   *export.Gateway
	Downloads *export.DownloadStore
	Sessions  *debug.Store
	Ring      *debug.Ring
}

// New creates a server listening on the given port.
func New(port int, deps Deps) *Server {
	if deps.Sessions == nil {
		deps.Sessions = debug.NewStore()
	}
	if deps.Ring == nil {
		deps.Ring = debug.NewRing(debug.DefaultRingCapacity)
	}

	s := &Server{
		store:     deps.Store,
		engine:    deps.Engine,
		llmClient: deps.LLMClient,
		gateway:   deps.Gateway,
		downloads: deps.Downloads,
		sessions:  deps.Sessions,
		ring:      deps.Ring,
		validate:  validator.New(),
	}

	mux := http.NewServeMux()

	// Resume pipeline
	mux.HandleFunc("POST /api/resume/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/resume/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/resume/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /api/resume/{id}", s.handleDeleteResume)
	mux.HandleFunc("GET /api/resume/user/{userId}", s.handleListResumes)
	mux.HandleFunc("POST /api/resume/upload", s.handleUpload)

	// Export
	mux.HandleFunc("POST /api/export/latex", s.handleExportLatex)
	mux.HandleFunc("POST /api/export/pdf", s.handleExportPDF)
	mux.HandleFunc("POST /api/export/image", s.handleExportImage)
	mux.HandleFunc("GET /api/export/formats", s.handleExportFormats)
	mux.HandleFunc("GET /api/export/health", s.handleExportHealth)
	mux.HandleFunc("GET /api/export/download/{id}", s.handleDownload)

	// Assistance and diagnostics
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/admin/logs", s.handleAdminLogs)
	mux.HandleFunc("GET /api/debug/{id}", s.handleDebugSession)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // tailoring runs can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.downloads != nil {
		s.downloads.Close()
	}
	s.store.Close()
	log.Println("Server stopped")
	return nil
}

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON parses and validates a request body.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}
