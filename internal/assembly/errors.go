package assembly

import "fmt"

// Error represents a failure to assemble the email from a normalized plan.
// Per-section irregularities degrade to warnings; this is reserved for
// payloads that cannot be decoded at all.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("assembly failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("assembly failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
