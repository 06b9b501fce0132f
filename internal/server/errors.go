package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/cvitae/cvitae/internal/export"
	"github.com/cvitae/cvitae/internal/store"
)

// httpStatus maps domain errors onto HTTP status codes. Compiler-side
// failures surface as 502 since the fault is the upstream service, not
// this one.
func httpStatus(err error) int {
	var compileErr *export.CompileError
	var gatewayErr *export.GatewayError

	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &compileErr), errors.As(err, &gatewayErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError renders a domain error, attaching compile hints and
// the debug session ID when present.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var compileErr *export.CompileError
	if errors.As(err, &compileErr) {
		payload := map[string]any{"error": compileErr.Message}
		if len(compileErr.Hints) > 0 {
			payload["hints"] = compileErr.Hints
		}
		if compileErr.SessionID != uuid.Nil {
			payload["debugSessionId"] = compileErr.SessionID.String()
		}
		s.jsonResponse(w, httpStatus(err), payload)
		return
	}
	s.errorResponse(w, httpStatus(err), err.Error())
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request: " + err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return "Invalid request: " + strings.Join(parts, "; ")
}
