package latex

import "fmt"

// BuildError indicates the programmatic builder could not produce a
// document from structured content.
type BuildError struct {
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("latex build failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("latex build failed: %s", e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// MalformedError indicates LLM output could not be cleaned into a valid
// document. Callers are expected to fall back to FallbackDocument.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed latex document: %s", e.Reason)
}
