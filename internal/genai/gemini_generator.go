// Package genai provides integration with LLM APIs (Gemini, Groq, and Cerebras).
// This file contains the Gemini implementation of text completion using the
// official google.golang.org/genai SDK.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiGenerator produces text completions using Google's Gemini API.
// It implements the Generator interface.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

// newGeminiGenerator creates a new Gemini-based generator.
// Returns nil if apiKey is empty (generation disabled).
func newGeminiGenerator(ctx context.Context, apiKey, model string) (*geminiGenerator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: generation disabled when no API key
	}

	if model == "" {
		model = DefaultGeminiModels[0]
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiGenerator{
		client: client,
		model:  model,
	}, nil
}

// Complete returns a single best-effort completion for the prompt.
func (g *geminiGenerator) Complete(ctx context.Context, prompt string, stop []string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("generator is nil")
	}

	ctx, cancel := context.WithTimeout(ctx, CompletionTimeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](CompletionTemperature),
		MaxOutputTokens: CompletionMaxTokens,
	}
	if len(stop) > 0 {
		config.StopSequences = stop
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "completion API call failed",
			"provider", ProviderGemini,
			"model", g.model,
			"prompt_length", len(prompt),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	return strings.TrimSpace(text.String()), nil
}

// IsEnabled returns true if the generator is properly initialized.
func (g *geminiGenerator) IsEnabled() bool {
	return g != nil && g.client != nil
}

// Provider returns the provider type for this generator.
func (g *geminiGenerator) Provider() Provider {
	return ProviderGemini
}

// Close releases resources (no-op for current API version).
func (g *geminiGenerator) Close() error {
	return nil
}
