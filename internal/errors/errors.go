// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrContextCanceled indicates context was canceled.
	ErrContextCanceled = errors.New("context canceled")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrGenerationUnavailable indicates every configured LLM provider failed.
	// This is the only failure class that surfaces to the caller of the
	// advisor; everything else degrades to a fallback response.
	ErrGenerationUnavailable = errors.New("generation engine unavailable")

	// ErrNoCourseCode indicates a graph-grounded intent had no resolvable
	// course code. Handled as a clarification request, not a failure.
	ErrNoCourseCode = errors.New("no resolvable course code")

	// ErrGraphUnavailable indicates the course graph could not be reached.
	ErrGraphUnavailable = errors.New("course graph unavailable")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
