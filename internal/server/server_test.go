package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvitae/cvitae/internal/debug"
	"github.com/cvitae/cvitae/internal/export"
	"github.com/cvitae/cvitae/internal/llm"
	"github.com/cvitae/cvitae/internal/store"
	"github.com/cvitae/cvitae/internal/tailoring"
)

// scriptedClient routes completions to canned results by inspecting the
// system prompt, the same way the pipeline stages are distinguished.
type scriptedClient struct {
	analysis   llm.Result
	tailoring  llm.Result
	extraction llm.Result
	conversion llm.Result
	chat       llm.Result
	available  bool
}

func (s *scriptedClient) Complete(_ context.Context, req llm.Request) llm.Result {
	switch {
	case strings.Contains(req.System, "job posting analyst"):
		return s.analysis
	case strings.Contains(req.System, "resume writer"):
		return s.tailoring
	case strings.Contains(req.System, "structured JSON"):
		return s.extraction
	case strings.Contains(req.System, "LaTeX document"):
		return s.conversion
	case strings.Contains(req.System, "career coach"):
		return s.chat
	}
	return llm.Result{Success: false, ErrorReason: llm.ErrorProvider, Detail: "unexpected request"}
}

func (s *scriptedClient) Health(_ context.Context) llm.HealthStatus {
	return llm.HealthStatus{Available: s.available, Configured: true, Model: "scripted", CheckedAt: time.Now()}
}
func (s *scriptedClient) Model() string    { return "scripted" }
func (s *scriptedClient) Configured() bool { return true }

func ok(content string, tokens int) llm.Result {
	return llm.Result{Success: true, Content: content, Usage: llm.Usage{TotalTokens: tokens}}
}

const validExtraction = `{
	"personalInfo": {"name": "Ada Lovelace", "email": "ada@example.com", "phone": "555-0100"},
	"experience": [{"title": "Analyst", "company": "Babbage & Co", "bullets": ["Improved throughput by 40%"]}],
	"skills": {"languages": ["Go"]}
}`

const tailoredProse = `SUMMARY:
Backend engineer with Go expertise.

EXPERIENCE:
Built Go services, improved latency by 40%.

SKILLS:
Go, PostgreSQL.`

func happyClient() *scriptedClient {
	return &scriptedClient{
		analysis:   ok(`{"requiredSkills": ["Go"], "primaryKeywords": ["backend"]}`, 100),
		tailoring:  ok(tailoredProse, 200),
		extraction: ok(validExtraction, 300),
		conversion: ok("\\documentclass{article}\n\\begin{document}\nhi\n\\end{document}", 50),
		chat:       ok("Lead with your strongest Go project.", 40),
		available:  true,
	}
}

// testEnv is a fully wired server against a stub LLM and a fake
// compiler service.
type testEnv struct {
	server    *Server
	store     *store.Memory
	sessions  *debug.Store
	ring      *debug.Ring
	downloads *export.DownloadStore
	compiler  *httptest.Server
}

func newTestEnv(t *testing.T, client llm.Client) *testEnv {
	t.Helper()

	compiler := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/compile/pdf":
			_, _ = w.Write([]byte("%PDF-1.7 rendered"))
		case "/compile/image":
			var req struct {
				Format string `json:"format"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Format == "jpg" {
				_, _ = w.Write([]byte("\xFF\xD8\xFF\xE0rendered"))
			} else {
				_, _ = w.Write([]byte("\x89PNG\r\n\x1a\nrendered"))
			}
		case "/health":
			_, _ = w.Write([]byte(`{"status": "healthy"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(compiler.Close)

	downloads, err := export.NewDownloadStore()
	require.NoError(t, err)
	t.Cleanup(downloads.Close)

	memory := store.NewMemory()
	sessions := debug.NewStore()
	ring := debug.NewRing(64)

	srv := New(0, Deps{
		Store:     memory,
		Engine:    tailoring.NewEngine(client),
		LLMClient: client,
		Gateway:   export.NewGateway(compiler.URL, 2, sessions),
		Downloads: downloads,
		Sessions:  sessions,
		Ring:      ring,
	})

	return &testEnv{
		server:    srv,
		store:     memory,
		sessions:  sessions,
		ring:      ring,
		downloads: downloads,
		compiler:  compiler,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAnalyze_Success(t *testing.T) {
	env := newTestEnv(t, happyClient())

	rec := env.do(t, http.MethodPost, "/api/resume/analyze", AnalyzeRequest{
		JobPosting: "Looking for a Go backend engineer.",
		JobTitle:   "Backend Engineer",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[AnalyzeResponse](t, rec)
	require.NotNil(t, resp.JobAnalysis)
	assert.Equal(t, "Backend Engineer", resp.JobAnalysis.JobTitle)
	assert.Contains(t, resp.JobAnalysis.RequiredSkills, "Go")
	assert.Equal(t, 100, resp.TokensUsed)
}

func TestAnalyze_MissingPosting(t *testing.T) {
	env := newTestEnv(t, happyClient())

	rec := env.do(t, http.MethodPost, "/api/resume/analyze", AnalyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "JobPosting")
}

func TestGenerate_PersistsResume(t *testing.T) {
	env := newTestEnv(t, happyClient())

	rec := env.do(t, http.MethodPost, "/api/resume/generate", GenerateRequest{
		MasterResume: "Ada Lovelace\nresume text",
		JobPosting:   "Go job posting",
		UserID:       "user-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[GenerateResponse](t, rec)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.NotEmpty(t, resp.TailoredResume)
	assert.Contains(t, resp.LatexCode, `\documentclass`)
	assert.Greater(t, resp.ATSCompatibilityScore, 0.0)
	assert.Equal(t, store.StatusCompleted, resp.Status)
	assert.Contains(t, resp.AvailableExports, "pdf")

	saved, err := env.store.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", saved.UserID)
	assert.Equal(t, resp.TailoredResume, saved.TailoredResume)
}

func TestGenerate_SectionTogglesOmitEducation(t *testing.T) {
	env := newTestEnv(t, happyClient())
	off := false

	rec := env.do(t, http.MethodPost, "/api/resume/generate", GenerateRequest{
		MasterResume:   "Ada Lovelace\nresume text",
		JobPosting:     "Go job posting",
		SectionToggles: &SectionToggles{Education: &off},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[GenerateResponse](t, rec)
	assert.NotContains(t, resp.TailoredResume, "EDUCATION:")
	assert.NotContains(t, resp.LatexCode, `\section{Education}`)
	for _, s := range resp.Sections {
		assert.NotEqual(t, "EDUCATION", s.Name)
	}
}

func TestGenerate_ScoreAndSelectionLists(t *testing.T) {
	env := newTestEnv(t, happyClient())

	rec := env.do(t, http.MethodPost, "/api/resume/generate", GenerateRequest{
		MasterResume: "Ada Lovelace\nresume text",
		JobPosting:   "Go job posting",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[GenerateResponse](t, rec)
	assert.Greater(t, resp.ATSCompatibilityScore, 1.0)
	assert.LessOrEqual(t, resp.ATSCompatibilityScore, 100.0)
	assert.InDelta(t, resp.OptimizationMetrics["total"]*100, resp.ATSCompatibilityScore, 1e-9)
	assert.Contains(t, resp.SelectedSkills, "Go")
	assert.Equal(t, []string{"Analyst, Babbage & Co"}, resp.SelectedExperiences)

	saved, err := env.store.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.InDelta(t, saved.ATSScore*100, resp.ATSCompatibilityScore, 1e-9)
}

func TestGenerate_MissingFields(t *testing.T) {
	env := newTestEnv(t, happyClient())

	rec := env.do(t, http.MethodPost, "/api/resume/generate", GenerateRequest{JobPosting: "posting"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MasterResume")
}

func TestGetResume_NotFound(t *testing.T) {
	env := newTestEnv(t, happyClient())

	rec := env.do(t, http.MethodGet, "/api/resume/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetResume_BadID(t *testing.T) {
	env := newTestEnv(t, happyClient())

	rec := env.do(t, http.MethodGet, "/api/resume/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteResume_RoundTrip(t *testing.T) {
	env := newTestEnv(t, happyClient())
	record := &store.Resume{MasterResume: "m", JobPosting: "p", TailoredResume: "t", Status: store.StatusCompleted}
	require.NoError(t, env.store.Save(context.Background(), record))

	rec := env.do(t, http.MethodDelete, "/api/resume/"+record.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/resume/"+record.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListResumes_ByUser(t *testing.T) {
	env := newTestEnv(t, happyClient())
	for i := 0; i < 2; i++ {
		record := &store.Resume{UserID: "user-7", MasterResume: "m", JobPosting: "p", TailoredResume: "t", Status: store.StatusCompleted}
		require.NoError(t, env.store.Save(context.Background(), record))
	}

	rec := env.do(t, http.MethodGet, "/api/resume/user/user-7", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resumes := decodeBody[[]store.Resume](t, rec)
	assert.Len(t, resumes, 2)
}

func TestListResumes_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t, happyClient())

	rec := env.do(t, http.MethodGet, "/api/resume/user/nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestUpload_TextFile(t *testing.T) {
	env := newTestEnv(t, happyClient())

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "resume.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("Ada Lovelace\nSoftware Engineer"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[UploadResponse](t, rec)
	assert.Equal(t, "resume.txt", resp.Filename)
	assert.Contains(t, resp.Text, "Ada Lovelace")
	assert.Equal(t, len(resp.Text), resp.Chars)
}

func TestUpload_RejectsDOCX(t *testing.T) {
	env := newTestEnv(t, happyClient())

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "resume.docx")
	require.NoError(t, err)
	_, _ = part.Write([]byte("PK\x03\x04"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
}

func TestUpload_MissingFile(t *testing.T) {
	env := newTestEnv(t, happyClient())

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("notfile", "value"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	env := newTestEnv(t, happyClient())

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
