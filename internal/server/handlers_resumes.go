package server

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/cvitae/cvitae/internal/ingestion"
	"github.com/cvitae/cvitae/internal/store"
	"github.com/cvitae/cvitae/internal/tailoring"
	"github.com/cvitae/cvitae/internal/types"
)

// maxUploadBytes caps resume uploads at 10 MB.
const maxUploadBytes = 10 << 20

// AnalyzeRequest is the body of POST /api/resume/analyze.
type AnalyzeRequest struct {
	JobPosting  string `json:"jobPosting" validate:"required"`
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
}

// AnalyzeResponse is the response of POST /api/resume/analyze.
type AnalyzeResponse struct {
	JobAnalysis *types.JobAnalysis `json:"jobAnalysis"`
	TokensUsed  int                `json:"tokensUsed"`
}

// SectionToggles selects which resume sections generation may emit.
// Omitted fields default to enabled; a disabled section is left out of
// both the tailored text and the LaTeX.
type SectionToggles struct {
	Experience     *bool `json:"experience"`
	Education      *bool `json:"education"`
	Projects       *bool `json:"projects"`
	Skills         *bool `json:"skills"`
	Leadership     *bool `json:"leadership"`
	Certifications *bool `json:"certifications"`
	Volunteering   *bool `json:"volunteering"`
}

// apply overlays the request toggles onto the engine defaults.
func (t *SectionToggles) apply(toggles *tailoring.SectionToggles) {
	if t == nil {
		return
	}
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&toggles.Experience, t.Experience)
	set(&toggles.Education, t.Education)
	set(&toggles.Projects, t.Projects)
	set(&toggles.Skills, t.Skills)
	set(&toggles.Leadership, t.Leadership)
	set(&toggles.Certifications, t.Certifications)
	set(&toggles.Volunteering, t.Volunteering)
}

// GenerateRequest is the body of POST /api/resume/generate.
type GenerateRequest struct {
	MasterResume   string          `json:"masterResume" validate:"required"`
	JobPosting     string          `json:"jobPosting" validate:"required"`
	JobTitle       string          `json:"jobTitle"`
	CompanyName    string          `json:"companyName"`
	TargetLength   string          `json:"targetLength"`
	IncludeSummary *bool           `json:"includeSummary"`
	SectionToggles *SectionToggles `json:"sectionToggles"`
	UserID         string          `json:"userId"`
	SessionID      string          `json:"sessionId"`
}

// GenerateResponse is the response of POST /api/resume/generate. The
// score is reported on a 0..100 scale.
type GenerateResponse struct {
	ID                    uuid.UUID          `json:"id"`
	TailoredResume        string             `json:"tailoredResume"`
	LatexCode             string             `json:"latexCode"`
	ATSCompatibilityScore float64            `json:"atsCompatibilityScore"`
	JobAnalysis           *types.JobAnalysis `json:"jobAnalysis"`
	Sections              []types.Section    `json:"sections,omitempty"`
	SelectedExperiences   []string           `json:"selectedExperiences"`
	SelectedSkills        []string           `json:"selectedSkills"`
	OptimizationMetrics   map[string]float64 `json:"optimizationMetrics"`
	TokensUsed            int                `json:"tokensUsed"`
	FallbackDocument      bool               `json:"fallbackDocument"`
	Status                string             `json:"status"`
	AvailableExports      []string           `json:"availableExports"`
}

// UploadResponse is the response of POST /api/resume/upload.
type UploadResponse struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
	Chars    int    `json:"chars"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	jobAnalysis, usage := s.engine.Analyzer().Analyze(r.Context(), req.JobPosting, req.JobTitle, req.CompanyName)
	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		JobAnalysis: jobAnalysis,
		TokensUsed:  usage.TotalTokens,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	opts := tailoring.DefaultOptions()
	opts.JobTitle = req.JobTitle
	opts.CompanyName = req.CompanyName
	if req.TargetLength != "" {
		opts.TargetLength = req.TargetLength
	}
	if req.IncludeSummary != nil {
		opts.IncludeSummary = *req.IncludeSummary
	}
	req.SectionToggles.apply(&opts.Sections)

	result, err := s.engine.Tailor(r.Context(), req.MasterResume, req.JobPosting, opts)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	record := &store.Resume{
		UserID:         req.UserID,
		SessionID:      req.SessionID,
		JobTitle:       result.JobAnalysis.JobTitle,
		CompanyName:    result.JobAnalysis.CompanyName,
		MasterResume:   req.MasterResume,
		JobPosting:     req.JobPosting,
		TailoredResume: result.TailoredContent,
		LatexCode:      result.LatexCode,
		TargetLength:   opts.TargetLength,
		ATSScore:       result.ATSScore,
		Status:         store.StatusCompleted,
	}
	if err := s.store.Save(r.Context(), record); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		ID:                    record.ID,
		TailoredResume:        result.TailoredContent,
		LatexCode:             result.LatexCode,
		ATSCompatibilityScore: result.ATSScore * 100,
		JobAnalysis:           result.JobAnalysis,
		Sections:              result.Sections,
		SelectedExperiences:   emptyIfNil(result.SelectedExperiences),
		SelectedSkills:        emptyIfNil(result.SelectedSkills),
		OptimizationMetrics:   result.OptimizationMetrics,
		TokensUsed:            result.TokensUsed,
		FallbackDocument:      result.FallbackDocument,
		Status:                record.Status,
		AvailableExports:      []string{"latex", "pdf", "png", "jpg"},
	})
}

// emptyIfNil keeps list fields serializing as [] rather than null.
func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	resume, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "User ID is required")
		return
	}

	resumes, err := s.store.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if resumes == nil {
		resumes = []store.Resume{}
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	text, err := ingestion.ExtractUpload(header.Filename, data)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{
		Filename: header.Filename,
		Text:     text,
		Chars:    len(text),
	})
}
