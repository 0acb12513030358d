// Package server provides the HTTP REST API for the email composer.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrRunNotFound indicates a pipeline run was not found
type ErrRunNotFound struct {
	RunID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}

// ErrArtifactNotFound indicates an artifact was not found
type ErrArtifactNotFound struct {
	RunID uuid.UUID
	Step  string
}

func (e *ErrArtifactNotFound) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("artifact not found: run %s step %s", e.RunID, e.Step)
	}
	return "artifact not found"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrRunNotFound, *ErrArtifactNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
