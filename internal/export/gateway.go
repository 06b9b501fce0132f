package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/cvitae/cvitae/internal/debug"
)

// Compile defaults, matching what the compiler service assumes.
const (
	DefaultPaperSize       = "A4"
	DefaultOrientation     = "portrait"
	DefaultDPI             = 300
	DefaultBackgroundColor = "white"
	DefaultMaxConcurrent   = 4
	compileTimeout         = 60 * time.Second
)

// Artifact is a rendered export: the bytes plus enough metadata to serve
// or save them.
type Artifact struct {
	Format   Format
	Data     []byte
	Filename string
}

// PDFOptions configure a PDF compile.
type PDFOptions struct {
	Name        string
	PaperSize   string
	Orientation string
}

// ImageOptions configure an image compile.
type ImageOptions struct {
	Name            string
	Format          Format
	DPI             int
	BackgroundColor string
	HighQuality     bool
}

// Gateway is the client for the LaTeX compiler service. Concurrent
// compiles are bounded; excess callers wait.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	sem        *semaphore.Weighted
	sessions   *debug.Store
}

// NewGateway creates a gateway for the compiler service at baseURL.
// Failed compiles are recorded in sessions when it is non-nil.
func NewGateway(baseURL string, maxConcurrent int64, sessions *debug.Store) *Gateway {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Gateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: compileTimeout},
		sem:        semaphore.NewWeighted(maxConcurrent),
		sessions:   sessions,
	}
}

// pdfRequest is the wire format of POST /compile/pdf.
type pdfRequest struct {
	Latex       string `json:"latex"`
	Name        string `json:"name"`
	PaperSize   string `json:"paperSize"`
	Orientation string `json:"orientation"`
}

// imageRequest is the wire format of POST /compile/image.
type imageRequest struct {
	Latex           string `json:"latex"`
	Name            string `json:"name"`
	Format          string `json:"format"`
	DPI             int    `json:"dpi"`
	BackgroundColor string `json:"backgroundColor"`
	HighQuality     bool   `json:"highQuality"`
}

// errorBody is the service's error response shape.
type errorBody struct {
	Error string `json:"error"`
}

// CompilePDF renders LaTeX to a PDF artifact.
func (g *Gateway) CompilePDF(ctx context.Context, latexSource string, opts PDFOptions) (*Artifact, error) {
	if opts.Name == "" {
		opts.Name = "resume"
	}
	if opts.PaperSize == "" {
		opts.PaperSize = DefaultPaperSize
	}
	if opts.Orientation == "" {
		opts.Orientation = DefaultOrientation
	}

	body := pdfRequest{
		Latex:       latexSource,
		Name:        opts.Name,
		PaperSize:   opts.PaperSize,
		Orientation: opts.Orientation,
	}
	data, err := g.compile(ctx, "/compile/pdf", body, latexSource, FormatPDF)
	if err != nil {
		return nil, err
	}
	return &Artifact{Format: FormatPDF, Data: data, Filename: opts.Name + ".pdf"}, nil
}

// CompileImage renders LaTeX to a PNG or JPEG artifact.
func (g *Gateway) CompileImage(ctx context.Context, latexSource string, opts ImageOptions) (*Artifact, error) {
	if opts.Format != FormatPNG && opts.Format != FormatJPEG {
		return nil, fmt.Errorf("image compile requires png or jpg, got %s", opts.Format)
	}
	if opts.Name == "" {
		opts.Name = "resume"
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	if opts.BackgroundColor == "" {
		opts.BackgroundColor = DefaultBackgroundColor
	}

	body := imageRequest{
		Latex:           latexSource,
		Name:            opts.Name,
		Format:          opts.Format.String(),
		DPI:             opts.DPI,
		BackgroundColor: opts.BackgroundColor,
		HighQuality:     opts.HighQuality,
	}
	data, err := g.compile(ctx, "/compile/image", body, latexSource, opts.Format)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Format:   opts.Format,
		Data:     data,
		Filename: opts.Name + "." + opts.Format.Extension(),
	}, nil
}

// compile posts a compile request and validates the returned artifact.
func (g *Gateway) compile(ctx context.Context, path string, body any, latexSource string, format Format) ([]byte, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, &GatewayError{Message: "cancelled while waiting for a compile slot", Cause: err}
	}
	defer g.sem.Release(1)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &GatewayError{Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &GatewayError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GatewayError{Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, g.compileFailure(latexSource, serviceError(resp.StatusCode, data))
	}

	if !format.ValidateMagic(data) {
		return nil, g.compileFailure(latexSource,
			fmt.Sprintf("service returned %d bytes that are not a valid %s artifact", len(data), format))
	}

	return data, nil
}

// compileFailure derives hints, records a debug session, and wraps
// everything in a CompileError.
func (g *Gateway) compileFailure(latexSource, message string) *CompileError {
	compileErr := &CompileError{
		Message: message,
		Hints:   Diagnose(message),
	}
	if g.sessions != nil {
		compileErr.SessionID = g.sessions.Put(latexSource, message, compileErr.Hints)
	}
	return compileErr
}

// serviceError extracts the message from a {"error": ...} body, falling
// back to the HTTP status.
func serviceError(status int, body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return fmt.Sprintf("HTTP %d from compiler service", status)
}

// Health checks the compiler service's health endpoint.
func (g *Gateway) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/health", nil)
	if err != nil {
		return &GatewayError{Message: "failed to create request", Cause: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &GatewayError{Message: "health check failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &GatewayError{Message: fmt.Sprintf("health check returned HTTP %d", resp.StatusCode)}
	}
	return nil
}
