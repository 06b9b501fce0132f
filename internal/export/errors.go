package export

import (
	"fmt"

	"github.com/google/uuid"
)

// GatewayError indicates the compiler service could not be reached or
// answered with something other than a compile result.
type GatewayError struct {
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compiler service unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("compiler service unavailable: %s", e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// CompileError indicates the service answered but compilation failed, or
// the produced artifact did not pass validation. Hints are derived from
// known failure signatures; SessionID points at the captured debug
// session when one was recorded.
type CompileError struct {
	Message   string
	Hints     []string
	SessionID uuid.UUID
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compilation failed: %s", e.Message)
}
