package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecompass/advisor-go/internal/genai"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvNeo4jURI, "bolt://localhost:7687")
	t.Setenv(EnvNeo4jPassword, "secret")
	t.Setenv(EnvGroqAPIKey, "gsk_test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)

	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.User)
	assert.Equal(t, 10*time.Second, cfg.Neo4j.Timeout)
	assert.Equal(t, 50, cfg.Neo4j.MaxPoolSize)

	assert.Equal(t, "gsk_test", cfg.LLM.Groq.APIKey)
	assert.Nil(t, cfg.LLM.Providers)
	assert.True(t, cfg.LLM.HasAnyProvider())

	assert.Equal(t, 50, cfg.CatalogLimit)
	assert.Equal(t, 5*time.Minute, cfg.CatalogTTL)
	assert.Equal(t, "prometheus", cfg.MetricsUsername)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvNeo4jTimeout, "3s")
	t.Setenv(EnvCatalogLimit, "25")
	t.Setenv(EnvCatalogTTL, "1m")
	t.Setenv(EnvLLMProviders, "gemini, groq")
	t.Setenv(EnvGeminiAPIKey, "ai_test")
	t.Setenv(EnvGroqModels, "llama-3.3-70b-versatile , llama-3.1-8b-instant")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.Neo4j.Timeout)
	assert.Equal(t, 25, cfg.CatalogLimit)
	assert.Equal(t, time.Minute, cfg.CatalogTTL)
	assert.Equal(t, []genai.Provider{genai.ProviderGemini, genai.ProviderGroq}, cfg.LLM.Providers)
	assert.Equal(t, []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}, cfg.LLM.Groq.Models)
}

func TestLoadValidation(t *testing.T) {
	t.Run("Missing Neo4j URI", func(t *testing.T) {
		t.Setenv(EnvNeo4jURI, "")
		t.Setenv(EnvGroqAPIKey, "gsk_test")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvNeo4jURI)
	})

	t.Run("No LLM provider configured", func(t *testing.T) {
		t.Setenv(EnvNeo4jURI, "bolt://localhost:7687")
		t.Setenv(EnvGroqAPIKey, "")
		t.Setenv(EnvGeminiAPIKey, "")
		t.Setenv(EnvCerebrasAPIKey, "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LLM provider")
	})

	t.Run("Unknown provider name", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv(EnvLLMProviders, "groq,openrouter")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "openrouter")
	})

	t.Run("Invalid catalog limit", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv(EnvCatalogLimit, "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvCatalogLimit)
	})

	t.Run("Sample rate out of range", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv(EnvSentrySampleRate, "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvSentrySampleRate)
	})
}

func TestGetListEnv(t *testing.T) {
	t.Run("Unset returns nil", func(t *testing.T) {
		t.Setenv("TEST_LIST_ENV", "")
		assert.Nil(t, getListEnv("TEST_LIST_ENV"))
	})

	t.Run("Trims and drops empties", func(t *testing.T) {
		t.Setenv("TEST_LIST_ENV", " a , , b,")
		assert.Equal(t, []string{"a", "b"}, getListEnv("TEST_LIST_ENV"))
	})
}
