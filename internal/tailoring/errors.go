package tailoring

import "fmt"

// StageError reports which pipeline stage failed and why. Stage failures
// are degraded, not surfaced to clients, so this mostly feeds logs.
type StageError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s stage failed: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s stage failed: %s", e.Stage, e.Message)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}
