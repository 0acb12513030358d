package sections

import "fmt"

// StoreError represents a failure loading the template directory
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template store error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template store error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
