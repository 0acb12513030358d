package llm

import "fmt"

// ProviderError represents a transport-level failure from the model service:
// network trouble, auth rejection, rate limiting or an empty candidate set.
// It is only returned after the fallback-model retry is exhausted.
type ProviderError struct {
	Model   string
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model service error (model %s): %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("model service error (model %s): %s", e.Model, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
