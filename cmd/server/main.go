// Package main provides the course advisor server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/coursecompass/advisor-go/internal/advisor"
	"github.com/coursecompass/advisor-go/internal/buildinfo"
	"github.com/coursecompass/advisor-go/internal/config"
	"github.com/coursecompass/advisor-go/internal/genai"
	"github.com/coursecompass/advisor-go/internal/graph"
	"github.com/coursecompass/advisor-go/internal/logger"
	"github.com/coursecompass/advisor-go/internal/metrics"
	"github.com/coursecompass/advisor-go/internal/planner"
	"github.com/coursecompass/advisor-go/internal/ratelimit"
	"github.com/coursecompass/advisor-go/internal/sentry"
	"github.com/coursecompass/advisor-go/internal/warmup"
	"github.com/coursecompass/advisor-go/internal/webapi"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.WithField("version", buildinfo.Version).
		WithField("commit", buildinfo.Commit).
		Info("Starting CourseCompass advisor server")

	// Initialize Sentry (no-op when DSN is empty)
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     cfg.SentryRelease,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	} else if cfg.SentryDSN != "" {
		log.Info("Sentry initialized")
		defer sentry.Flush(2 * time.Second)
	}

	// Create Prometheus registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Connect to the course graph
	graphClient, err := graph.NewClient(context.Background(), cfg.Neo4j, log.Logger)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to course graph")
	}
	defer func() { _ = graphClient.Close(context.Background()) }()
	log.WithField("uri", cfg.Neo4j.URI).Info("Course graph connected")

	store := graph.NewStore(graphClient, log.Logger, m)
	catalog := graph.NewCatalogSummarizer(store, cfg.CatalogLimit, cfg.CatalogTTL, log.Logger)

	// Prime the catalog digest in the background (best-effort)
	warmupCtx, warmupCancel := context.WithCancel(context.Background())
	defer warmupCancel()
	warmup.RunInBackground(warmupCtx, catalog, log)

	// Create the generation engine with provider fallback
	generator, err := genai.CreateGenerator(context.Background(), cfg.LLM, m)
	if err != nil {
		log.WithError(err).Fatal("Failed to create LLM generator")
	}
	if generator == nil {
		log.Fatal("No LLM provider configured")
	}
	defer func() { _ = generator.Close() }()
	log.WithField("providers", cfg.LLM.ConfiguredProviders()).Info("LLM generator created")

	// Per-session LLM rate limiter
	llmLimiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:       "llm",
		Burst:      cfg.LLMRateLimitBurst,
		RefillRate: cfg.LLMRateLimitRefill,
		Metrics:    m,
	})
	defer llmLimiter.Stop()

	// Per-client request rate limiter
	clientLimiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:       "client",
		Burst:      cfg.ClientRateLimitBurst,
		RefillRate: cfg.ClientRateLimitRefill,
		Metrics:    m,
	})
	defer clientLimiter.Stop()

	// Assemble the advisor core
	adv := advisor.New(advisor.Options{
		Planner:   planner.New(generator, log.Logger),
		Store:     store,
		Catalog:   catalog,
		Generator: generator,
		Limiter:   llmLimiter,
		Log:       log.Logger,
		Metrics:   m,
	})
	sessions := advisor.NewSessionStore()
	chatHandler := webapi.NewHandler(adv, sessions, clientLimiter, log)
	log.Info("Advisor core assembled")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, cfg, chatHandler, graphClient, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}
