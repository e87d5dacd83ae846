// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "PORT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	// Neo4j (Required)
	EnvNeo4jURI         = "NEO4J_URI"
	EnvNeo4jUser        = "NEO4J_USER"
	EnvNeo4jPassword    = "NEO4J_PASSWORD"
	EnvNeo4jDatabase    = "NEO4J_DATABASE"
	EnvNeo4jTimeout     = "NEO4J_TIMEOUT"
	EnvNeo4jMaxPoolSize = "NEO4J_MAX_POOL_SIZE"

	// LLM Feature
	EnvLLMProviders   = "LLM_PROVIDERS"
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvGroqAPIKey     = "GROQ_API_KEY"
	EnvCerebrasAPIKey = "CEREBRAS_API_KEY"
	EnvGeminiModels   = "GEMINI_MODELS"
	EnvGroqModels     = "GROQ_MODELS"
	EnvCerebrasModels = "CEREBRAS_MODELS"

	// Catalog Digest
	EnvCatalogLimit = "CATALOG_LIMIT"
	EnvCatalogTTL   = "CATALOG_TTL"

	// Rate Limits
	EnvClientRateBurst  = "CLIENT_RATE_BURST"
	EnvClientRateRefill = "CLIENT_RATE_REFILL"
	EnvLLMRateBurst     = "LLM_RATE_BURST"
	EnvLLMRateRefill    = "LLM_RATE_REFILL"

	// Sentry Feature
	EnvSentryDSN         = "SENTRY_DSN"
	EnvSentryEnvironment = "SENTRY_ENVIRONMENT"
	EnvSentryRelease     = "SENTRY_RELEASE"
	EnvSentrySampleRate  = "SENTRY_SAMPLE_RATE"

	// Metrics Auth Feature
	EnvMetricsUsername = "METRICS_USERNAME"
	EnvMetricsPassword = "METRICS_PASSWORD"
)
