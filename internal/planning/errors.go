package planning

import "fmt"

// MalformedOutputError represents model output that cannot be parsed or fails
// JSON Schema validation at the boundary. Always fatal: malformed JSON is
// never partially accepted.
type MalformedOutputError struct {
	Message string
	Cause   error
}

func (e *MalformedOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model output: %s", e.Message)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Cause
}

// ShapeError represents a decoded decision that violates the upstream shape
// contract: missing subject or preview, missing or empty sequence, missing
// slots. Fatal, unlike the recoverable irregularities normalization heals.
type ShapeError struct {
	Message string
	Cause   error
}

func (e *ShapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("shape contract violation: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("shape contract violation: %s", e.Message)
}

func (e *ShapeError) Unwrap() error {
	return e.Cause
}
