package errors

import (
	"errors"
	"testing"
)

func TestErrorWrapper(t *testing.T) {
	wrapper := NewWrapper("graph", "full_prerequisites")

	t.Run("Wrap returns nil for nil error", func(t *testing.T) {
		result := wrapper.Wrap(nil, "could not load prerequisites")
		if result != nil {
			t.Errorf("expected nil, got %v", result)
		}
	})

	t.Run("Wrap creates WrappedError", func(t *testing.T) {
		baseErr := errors.New("connection refused")
		wrapped := wrapper.Wrap(baseErr, "could not load prerequisites")

		if wrapped == nil {
			t.Fatal("expected non-nil wrapped error")
		}

		wrappedErr, ok := wrapped.(*WrappedError)
		if !ok {
			t.Fatal("expected WrappedError type")
		}

		if wrappedErr.Component != "graph" {
			t.Errorf("expected component 'graph', got '%s'", wrappedErr.Component)
		}

		if wrappedErr.Operation != "full_prerequisites" {
			t.Errorf("expected operation 'full_prerequisites', got '%s'", wrappedErr.Operation)
		}

		if wrappedErr.UserMessage != "could not load prerequisites" {
			t.Errorf("unexpected user message '%s'", wrappedErr.UserMessage)
		}

		if !errors.Is(wrapped, baseErr) {
			t.Error("wrapped error should unwrap to base error")
		}
	})

	t.Run("Wrapf formats message", func(t *testing.T) {
		baseErr := errors.New("not found")
		wrapped := wrapper.Wrapf(baseErr, "course %s not found", "CS 110")

		wrappedErr := wrapped.(*WrappedError)
		expected := "course CS 110 not found"
		if wrappedErr.UserMessage != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrappedErr.UserMessage)
		}
	})
}

func TestGetUserMessage(t *testing.T) {
	t.Run("returns empty string for nil", func(t *testing.T) {
		result := GetUserMessage(nil)
		if result != "" {
			t.Errorf("expected empty string, got '%s'", result)
		}
	})

	t.Run("returns user message from WrappedError", func(t *testing.T) {
		wrapped := &WrappedError{
			Operation:   "catalog",
			Component:   "graph",
			Cause:       errors.New("base error"),
			UserMessage: "catalog unavailable",
		}

		result := GetUserMessage(wrapped)
		if result != "catalog unavailable" {
			t.Errorf("expected 'catalog unavailable', got '%s'", result)
		}
	})

	t.Run("falls back to Error() for plain errors", func(t *testing.T) {
		err := errors.New("plain failure")
		if got := GetUserMessage(err); got != "plain failure" {
			t.Errorf("expected 'plain failure', got '%s'", got)
		}
	})
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrTimeout,
		ErrContextCanceled,
		ErrRateLimitExceeded,
		ErrGenerationUnavailable,
		ErrNoCourseCode,
		ErrGraphUnavailable,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}
