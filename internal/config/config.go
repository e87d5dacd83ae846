// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, the Neo4j connection, LLM providers, and rate limits.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/coursecompass/advisor-go/internal/genai"
	"github.com/coursecompass/advisor-go/internal/graph"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Neo4j Configuration
	Neo4j graph.ClientConfig

	// LLM Configuration
	LLM genai.Config

	// Catalog Digest Configuration
	CatalogLimit int
	CatalogTTL   time.Duration

	// Rate Limits (Token Bucket Algorithm)
	ClientRateLimitBurst  float64 // Maximum burst tokens per client (default: 15)
	ClientRateLimitRefill float64 // Tokens refilled per second (default: 0.5)
	LLMRateLimitBurst     float64 // Maximum burst tokens for LLM per session (default: 20)
	LLMRateLimitRefill    float64 // LLM tokens refilled per second (default: 0.2)

	// Sentry Configuration
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Server Configuration
		Port:            getEnv(EnvPort, "8000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		// Neo4j Configuration
		Neo4j: graph.ClientConfig{
			URI:         getEnv(EnvNeo4jURI, ""),
			User:        getEnv(EnvNeo4jUser, "neo4j"),
			Password:    getEnv(EnvNeo4jPassword, ""),
			Database:    getEnv(EnvNeo4jDatabase, ""),
			Timeout:     getDurationEnv(EnvNeo4jTimeout, 10*time.Second),
			MaxPoolSize: getIntEnv(EnvNeo4jMaxPoolSize, 50),
		},

		// LLM Configuration
		LLM: genai.Config{
			Providers: getProvidersEnv(EnvLLMProviders),
			Gemini: genai.ProviderConfig{
				APIKey: getEnv(EnvGeminiAPIKey, ""),
				Models: getListEnv(EnvGeminiModels),
			},
			Groq: genai.ProviderConfig{
				APIKey: getEnv(EnvGroqAPIKey, ""),
				Models: getListEnv(EnvGroqModels),
			},
			Cerebras: genai.ProviderConfig{
				APIKey: getEnv(EnvCerebrasAPIKey, ""),
				Models: getListEnv(EnvCerebrasModels),
			},
			Retry: genai.DefaultRetryConfig(),
		},

		// Catalog Digest Configuration
		CatalogLimit: getIntEnv(EnvCatalogLimit, graph.DefaultCatalogLimit),
		CatalogTTL:   getDurationEnv(EnvCatalogTTL, graph.DefaultCatalogTTL),

		// Rate Limits
		ClientRateLimitBurst:  getFloatEnv(EnvClientRateBurst, 15.0),
		ClientRateLimitRefill: getFloatEnv(EnvClientRateRefill, 0.5),
		LLMRateLimitBurst:     getFloatEnv(EnvLLMRateBurst, 20.0),
		LLMRateLimitRefill:    getFloatEnv(EnvLLMRateRefill, 0.2),

		// Sentry Configuration
		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentryRelease:     getEnv(EnvSentryRelease, ""),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		// Metrics Authentication
		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.Neo4j.URI == "" {
		errs = append(errs, errors.New(EnvNeo4jURI+" is required"))
	}
	if !c.LLM.HasAnyProvider() {
		errs = append(errs, errors.New("at least one LLM provider API key is required"))
	}
	for _, p := range c.LLM.Providers {
		if !p.IsValid() {
			errs = append(errs, fmt.Errorf("unknown LLM provider %q in %s", p, EnvLLMProviders))
		}
	}
	if c.CatalogLimit <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvCatalogLimit, c.CatalogLimit))
	}
	if c.CatalogTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvCatalogTTL, c.CatalogTTL))
	}
	if c.ClientRateLimitBurst <= 0 || c.ClientRateLimitRefill <= 0 {
		errs = append(errs, errors.New("client rate limit burst and refill must be positive"))
	}
	if c.LLMRateLimitBurst <= 0 || c.LLMRateLimitRefill <= 0 {
		errs = append(errs, errors.New("LLM rate limit burst and refill must be positive"))
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be between 0 and 1, got %v", EnvSentrySampleRate, c.SentrySampleRate))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getListEnv parses a comma-separated environment variable into a slice,
// trimming whitespace and dropping empty entries. Returns nil when unset.
func getListEnv(key string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getProvidersEnv parses the ordered LLM provider preference list.
// Returns nil when unset so the genai defaults apply.
func getProvidersEnv(key string) []genai.Provider {
	names := getListEnv(key)
	if len(names) == 0 {
		return nil
	}
	providers := make([]genai.Provider, 0, len(names))
	for _, name := range names {
		providers = append(providers, genai.Provider(strings.ToLower(name)))
	}
	return providers
}
