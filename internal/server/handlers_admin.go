package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cvitae/cvitae/internal/llm"
	"github.com/cvitae/cvitae/internal/prompts"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse is the response of POST /api/chat.
type ChatResponse struct {
	Reply      string `json:"reply"`
	Source     string `json:"source"`
	TokensUsed int    `json:"tokensUsed,omitempty"`
}

// HealthResponse is the aggregate health report.
type HealthResponse struct {
	Status   string           `json:"status"`
	LLM      llm.HealthStatus `json:"llm"`
	Compiler string           `json:"compiler"`
}

// cannedTips are returned when the LLM gateway is unavailable.
var cannedTips = "Quick resume tips: lead bullets with strong verbs, quantify impact " +
	"(percentages, dollar amounts, team sizes), mirror the job posting's key skills, " +
	"and keep everything to one page unless you have 10+ years of experience."

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	system := prompts.MustGet("chat.json", "system")
	user := prompts.Format(prompts.MustGet("chat.json", "user"), map[string]string{
		"Message": req.Message,
	})

	result := s.llmClient.Complete(r.Context(), llm.ChatRequest(system, user))
	if !result.Success {
		s.jsonResponse(w, http.StatusOK, ChatResponse{
			Reply:  cannedTips,
			Source: "fallback",
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, ChatResponse{
		Reply:      result.Content,
		Source:     "ai",
		TokensUsed: result.Usage.TotalTokens,
	})
}

// handleHealth probes the LLM provider and the compiler service
// concurrently and reports aggregate status. A degraded dependency does
// not fail the endpoint; status says "degraded".
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var llmStatus llm.HealthStatus
	var compilerErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		llmStatus = s.llmClient.Health(gctx)
		return nil
	})
	g.Go(func() error {
		compilerErr = s.gateway.Health(gctx)
		return nil
	})
	_ = g.Wait()

	resp := HealthResponse{Status: "ok", LLM: llmStatus, Compiler: "healthy"}
	if compilerErr != nil {
		resp.Compiler = "unavailable"
		resp.Status = "degraded"
	}
	if !llmStatus.Available {
		resp.Status = "degraded"
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleAdminLogs(w http.ResponseWriter, _ *http.Request) {
	lines := s.ring.Snapshot()
	if lines == nil {
		lines = []string{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"lines": lines,
		"count": len(lines),
	})
}

func (s *Server) handleDebugSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	session, ok := s.sessions.Get(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Debug session not found or expired")
		return
	}
	s.jsonResponse(w, http.StatusOK, session)
}
