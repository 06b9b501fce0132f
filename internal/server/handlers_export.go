package server

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/cvitae/cvitae/internal/export"
	"github.com/cvitae/cvitae/internal/latex"
)

var imageFormatPattern = regexp.MustCompile(`(?i)^(png|jpg|jpeg)$`)

// ExportRequest is the shared body of the export endpoints. The LaTeX
// source comes from a stored resume (resumeId) or is supplied inline
// (latex); at least one is required.
type ExportRequest struct {
	ResumeID        string `json:"resumeId"`
	Latex           string `json:"latex"`
	Name            string `json:"name"`
	PaperSize       string `json:"paperSize"`
	Orientation     string `json:"orientation"`
	DPI             int    `json:"dpi"`
	BackgroundColor string `json:"backgroundColor"`
	HighQuality     *bool  `json:"highQuality"`
}

// ExportResponse describes a produced artifact and where to download it.
type ExportResponse struct {
	DownloadID  uuid.UUID `json:"downloadId"`
	Filename    string    `json:"filename"`
	Format      string    `json:"format"`
	ContentType string    `json:"contentType"`
	Bytes       int       `json:"bytes"`
}

// FormatInfo is one row of GET /api/export/formats.
type FormatInfo struct {
	Format      string `json:"format"`
	ContentType string `json:"contentType"`
	Extension   string `json:"extension"`
}

// resolveLatex returns the LaTeX source an export request refers to:
// the stored resume's document when resumeId is given, the inline source
// otherwise. A missing stored resume still proceeds when inline LaTeX is
// supplied. On failure the response has been written and ok is false.
func (s *Server) resolveLatex(w http.ResponseWriter, r *http.Request, req *ExportRequest) (string, bool) {
	if req.ResumeID != "" {
		id, err := uuid.Parse(req.ResumeID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
			return "", false
		}
		resume, err := s.store.Get(r.Context(), id)
		if err == nil {
			return resume.LatexCode, true
		}
		if req.Latex == "" {
			s.writeDomainError(w, err)
			return "", false
		}
	}
	if req.Latex == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either resumeId or latex is required")
		return "", false
	}
	return req.Latex, true
}

func (s *Server) handleExportLatex(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	source, ok := s.resolveLatex(w, r, &req)
	if !ok {
		return
	}

	doc := latex.Process(source)
	if doc.State == latex.StateMalformed {
		s.errorResponse(w, http.StatusBadRequest, "Malformed LaTeX: "+doc.Reason)
		return
	}

	name := req.Name
	if name == "" {
		name = "resume"
	}
	artifact := &export.Artifact{
		Format:   export.FormatLaTeX,
		Data:     []byte(doc.Cleaned),
		Filename: name + ".tex",
	}
	s.respondWithArtifact(w, artifact)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	source, ok := s.resolveLatex(w, r, &req)
	if !ok {
		return
	}

	artifact, err := s.gateway.CompilePDF(r.Context(), source, export.PDFOptions{
		Name:        req.Name,
		PaperSize:   req.PaperSize,
		Orientation: req.Orientation,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.respondWithArtifact(w, artifact)
}

func (s *Server) handleExportImage(w http.ResponseWriter, r *http.Request) {
	rawFormat := r.URL.Query().Get("format")
	if rawFormat == "" {
		rawFormat = "png"
	}
	if !imageFormatPattern.MatchString(rawFormat) {
		s.errorResponse(w, http.StatusBadRequest, "Unsupported image format: "+rawFormat)
		return
	}
	format, err := export.ParseImageFormat(rawFormat)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ExportRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	source, ok := s.resolveLatex(w, r, &req)
	if !ok {
		return
	}

	highQuality := true
	if req.HighQuality != nil {
		highQuality = *req.HighQuality
	}
	artifact, err := s.gateway.CompileImage(r.Context(), source, export.ImageOptions{
		Name:            req.Name,
		Format:          format,
		DPI:             req.DPI,
		BackgroundColor: req.BackgroundColor,
		HighQuality:     highQuality,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.respondWithArtifact(w, artifact)
}

func (s *Server) handleExportFormats(w http.ResponseWriter, _ *http.Request) {
	formats := []export.Format{export.FormatLaTeX, export.FormatPDF, export.FormatPNG, export.FormatJPEG}
	infos := make([]FormatInfo, 0, len(formats))
	for _, f := range formats {
		infos = append(infos, FormatInfo{
			Format:      f.String(),
			ContentType: f.ContentType(),
			Extension:   f.Extension(),
		})
	}
	s.jsonResponse(w, http.StatusOK, infos)
}

func (s *Server) handleExportHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.gateway.Health(r.Context()); err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"detail": err.Error(),
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid download ID")
		return
	}

	artifact, ok := s.downloads.Get(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Download not found or expired")
		return
	}

	w.Header().Set("Content-Type", artifact.Format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	_, _ = w.Write(artifact.Data)
}

// respondWithArtifact spools the artifact for later download and returns
// its metadata.
func (s *Server) respondWithArtifact(w http.ResponseWriter, artifact *export.Artifact) {
	id, err := s.downloads.Put(artifact)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store artifact: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ExportResponse{
		DownloadID:  id,
		Filename:    artifact.Filename,
		Format:      artifact.Format.String(),
		ContentType: artifact.Format.ContentType(),
		Bytes:       len(artifact.Data),
	})
}
