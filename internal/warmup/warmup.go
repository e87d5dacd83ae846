// Package warmup primes the catalog digest cache at startup so the first
// advising question does not pay the full catalog query.
package warmup

import (
	"context"
	"time"

	"github.com/coursecompass/advisor-go/internal/logger"
)

// CatalogSource is the digest producer being warmed.
type CatalogSource interface {
	Summary(ctx context.Context) (string, error)
}

// Timeout bounds one warmup attempt.
const Timeout = 30 * time.Second

// retryDelay is the wait between failed warmup attempts.
const retryDelay = 10 * time.Second

// maxAttempts bounds warmup retries. The digest is still built lazily on
// first use, so giving up here only costs first-request latency.
const maxAttempts = 3

// Run builds the catalog digest once, retrying on failure.
func Run(ctx context.Context, catalog CatalogSource, log *logger.Logger) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, Timeout)
		_, err = catalog.Summary(attemptCtx)
		cancel()

		if err == nil {
			log.WithField("attempt", attempt).Info("Catalog digest warmed")
			return nil
		}

		log.WithError(err).WithField("attempt", attempt).Warn("Catalog warmup attempt failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return err
}

// RunInBackground starts Run on its own goroutine. Warmup is best-effort;
// failures are logged and the server serves traffic regardless.
func RunInBackground(ctx context.Context, catalog CatalogSource, log *logger.Logger) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in catalog warmup goroutine")
			}
		}()
		if err := Run(ctx, catalog, log); err != nil {
			log.WithError(err).Warn("Catalog warmup gave up, digest will be built on first use")
		}
	}()
}
