// Package genai provides integration with LLM APIs (Gemini, Groq, and Cerebras).
// This file contains factory functions for creating generators.
package genai

import (
	"context"
	"log/slog"

	"github.com/coursecompass/advisor-go/internal/metrics"
)

// CreateGenerator builds a Generator from the provided configuration.
// It returns a FallbackGenerator whose chain covers every configured
// provider's model list in order:
//
//  1. First provider's models are tried in the specified order.
//  2. If all fail, the next provider's models are tried.
//  3. Each model gets retry logic (configured in RetryConfig).
//
// Returns nil (with nil error) if no provider is configured.
func CreateGenerator(ctx context.Context, cfg Config, m *metrics.Metrics) (Generator, error) {
	providers := cfg.Providers
	if len(providers) == 0 {
		providers = DefaultProviders
	}

	chain := []Generator{}

	add := func(provider Provider) {
		pc := cfg.GetProviderConfig(provider)
		if pc == nil || pc.APIKey == "" {
			return
		}

		models := pc.Models
		if len(models) == 0 {
			switch provider {
			case ProviderGemini:
				models = DefaultGeminiModels
			case ProviderGroq:
				models = DefaultGroqModels
			case ProviderCerebras:
				models = DefaultCerebrasModels
			}
		}

		for _, model := range models {
			var (
				gen Generator
				err error
			)
			if provider == ProviderGemini {
				gen, err = newGeminiGenerator(ctx, pc.APIKey, model)
			} else {
				gen, err = newOpenAIGenerator(ctx, provider, pc.APIKey, model)
			}
			if err != nil {
				slog.WarnContext(ctx, "failed to create generator",
					"provider", provider,
					"model", model,
					"error", err)
				continue
			}
			chain = append(chain, gen)
		}
	}

	for _, p := range providers {
		add(p)
	}

	if len(chain) == 0 {
		slog.InfoContext(ctx, "no LLM provider configured")
		return nil, nil //nolint:nilnil // Intentional: generation disabled
	}

	slog.InfoContext(ctx, "generator configured",
		"primary", chain[0].Provider(),
		"chain_size", len(chain))

	return NewFallbackGenerator(cfg.Retry, m, chain...), nil
}
