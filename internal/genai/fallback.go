// Package genai provides integration with LLM APIs (Gemini, Groq, and Cerebras).
// This file contains the fallback wrapper for cross-model and cross-provider failover.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domerrors "github.com/coursecompass/advisor-go/internal/errors"
	"github.com/coursecompass/advisor-go/internal/metrics"
)

// FallbackGenerator wraps an ordered chain of generators.
// It implements three-layer failover:
// 1. Model retry with backoff (same generator)
// 2. Chain fallback (next model, then next provider)
// 3. Hard failure: ErrGenerationUnavailable once the chain is exhausted
type FallbackGenerator struct {
	chain       []Generator
	retryConfig RetryConfig
	metrics     *metrics.Metrics
}

// NewFallbackGenerator creates a fallback-enabled generator from a chain.
// The chain order is significant: earlier generators are preferred.
func NewFallbackGenerator(cfg RetryConfig, m *metrics.Metrics, chain ...Generator) *FallbackGenerator {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig()
	}
	return &FallbackGenerator{
		chain:       chain,
		retryConfig: cfg,
		metrics:     m,
	}
}

// Complete walks the generator chain until one succeeds.
// Every generator gets retry treatment for transient errors; permanent
// errors skip straight to the next chain entry.
func (f *FallbackGenerator) Complete(ctx context.Context, prompt string, stop []string) (string, error) {
	if f == nil || len(f.chain) == 0 {
		return "", domerrors.ErrGenerationUnavailable
	}

	var lastErr error

	for i, gen := range f.chain {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		provider := gen.Provider().String()
		start := time.Now()

		var text string
		err := WithRetry(ctx, f.retryConfig,
			func(attempt int, err error) {
				f.metrics.RecordLLMRetry(provider)
				slog.WarnContext(ctx, "retrying completion",
					"provider", provider,
					"attempt", attempt,
					"error", err)
			},
			func() error {
				var completeErr error
				text, completeErr = gen.Complete(ctx, prompt, stop)
				return completeErr
			})

		if err == nil {
			f.metrics.RecordLLMRequest(provider, "success", time.Since(start))
			if i > 0 {
				slog.InfoContext(ctx, "completion served by fallback",
					"provider", provider,
					"chain_position", i)
			}
			return text, nil
		}

		lastErr = err
		f.metrics.RecordLLMRequest(provider, "error", time.Since(start))
		slog.WarnContext(ctx, "generator failed, trying next in chain",
			"provider", provider,
			"chain_position", i,
			"error", err)
	}

	slog.ErrorContext(ctx, "all generators failed", "chain_size", len(f.chain), "error", lastErr)
	return "", fmt.Errorf("%w: %v", domerrors.ErrGenerationUnavailable, lastErr)
}

// IsEnabled returns true if at least one generator is in the chain.
func (f *FallbackGenerator) IsEnabled() bool {
	return f != nil && len(f.chain) > 0
}

// Provider returns the primary provider of the chain.
func (f *FallbackGenerator) Provider() Provider {
	if f == nil || len(f.chain) == 0 {
		return ""
	}
	return f.chain[0].Provider()
}

// Close closes every generator in the chain.
func (f *FallbackGenerator) Close() error {
	if f == nil {
		return nil
	}
	var firstErr error
	for _, gen := range f.chain {
		if err := gen.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
