package genai

import (
	"context"
	"errors"
	"testing"
	"time"

	domerrors "github.com/coursecompass/advisor-go/internal/errors"
)

// fakeGenerator is a scriptable Generator for tests.
type fakeGenerator struct {
	provider Provider
	text     string
	err      error
	calls    int
}

func (f *fakeGenerator) Complete(_ context.Context, _ string, _ []string) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeGenerator) IsEnabled() bool     { return true }
func (f *fakeGenerator) Provider() Provider  { return f.provider }
func (f *fakeGenerator) Close() error        { return nil }

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestFallbackGeneratorPrimarySuccess(t *testing.T) {
	primary := &fakeGenerator{provider: ProviderGroq, text: "hello"}
	secondary := &fakeGenerator{provider: ProviderGemini, text: "unused"}

	fg := NewFallbackGenerator(fastRetry(), nil, primary, secondary)

	got, err := fg.Complete(context.Background(), "prompt", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
	if secondary.calls != 0 {
		t.Error("secondary should not be called when primary succeeds")
	}
}

func TestFallbackGeneratorFailsOver(t *testing.T) {
	primary := &fakeGenerator{provider: ProviderGroq, err: errors.New("401 unauthorized")}
	secondary := &fakeGenerator{provider: ProviderGemini, text: "from fallback"}

	fg := NewFallbackGenerator(fastRetry(), nil, primary, secondary)

	got, err := fg.Complete(context.Background(), "prompt", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from fallback" {
		t.Errorf("got %q, want %q", got, "from fallback")
	}
	if primary.calls != 1 {
		t.Errorf("permanent error should not be retried, primary calls = %d", primary.calls)
	}
}

func TestFallbackGeneratorRetriesTransient(t *testing.T) {
	primary := &fakeGenerator{provider: ProviderGroq, err: errors.New("503 unavailable")}
	fg := NewFallbackGenerator(fastRetry(), nil, primary)

	_, err := fg.Complete(context.Background(), "prompt", nil)
	if err == nil {
		t.Fatal("expected error when all generators fail")
	}
	if primary.calls != 2 {
		t.Errorf("transient error should be retried, calls = %d", primary.calls)
	}
}

func TestFallbackGeneratorExhaustedIsUnavailable(t *testing.T) {
	primary := &fakeGenerator{provider: ProviderGroq, err: errors.New("401 unauthorized")}
	secondary := &fakeGenerator{provider: ProviderGemini, err: errors.New("403 forbidden")}

	fg := NewFallbackGenerator(fastRetry(), nil, primary, secondary)

	_, err := fg.Complete(context.Background(), "prompt", nil)
	if !errors.Is(err, domerrors.ErrGenerationUnavailable) {
		t.Errorf("exhausted chain should wrap ErrGenerationUnavailable, got %v", err)
	}
}

func TestFallbackGeneratorEmptyChain(t *testing.T) {
	fg := NewFallbackGenerator(fastRetry(), nil)

	if fg.IsEnabled() {
		t.Error("empty chain should not be enabled")
	}
	if _, err := fg.Complete(context.Background(), "prompt", nil); !errors.Is(err, domerrors.ErrGenerationUnavailable) {
		t.Errorf("empty chain should return ErrGenerationUnavailable, got %v", err)
	}
}
