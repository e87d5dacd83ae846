package graph

// This file contains the catalog digest used to ground free-form advising
// prompts. The digest is expensive relative to the other queries, so it is
// cached with a TTL and concurrent refreshes are collapsed to one query.

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCatalogLimit bounds the digest so advising prompts stay well
	// inside model context windows.
	DefaultCatalogLimit = 50

	// DefaultCatalogTTL is how long a digest stays fresh.
	DefaultCatalogTTL = 5 * time.Minute

	catalogCacheKey = "catalog_digest"
)

// CatalogSummarizer produces the human-readable catalog digest.
type CatalogSummarizer struct {
	store *Store
	limit int
	cache *gocache.Cache
	group singleflight.Group
	log   *slog.Logger
}

// NewCatalogSummarizer builds a summarizer over the store. A non-positive
// limit or TTL falls back to the defaults.
func NewCatalogSummarizer(store *Store, limit int, ttl time.Duration, log *slog.Logger) *CatalogSummarizer {
	if limit <= 0 {
		limit = DefaultCatalogLimit
	}
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &CatalogSummarizer{
		store: store,
		limit: limit,
		cache: gocache.New(ttl, 2*ttl),
		log:   log.With(slog.String("component", "graph.catalog")),
	}
}

// Summary returns the catalog digest, one line per course. Results are
// cached for the configured TTL; concurrent misses share one graph query.
func (c *CatalogSummarizer) Summary(ctx context.Context) (string, error) {
	if cached, ok := c.cache.Get(catalogCacheKey); ok {
		c.store.metrics.RecordCatalogCacheHit()
		return cached.(string), nil
	}
	c.store.metrics.RecordCatalogCacheMiss()

	digest, err, _ := c.group.Do(catalogCacheKey, func() (any, error) {
		entries, err := c.store.Catalog(ctx, c.limit)
		if err != nil {
			return "", err
		}
		digest := FormatCatalogDigest(entries)
		c.cache.SetDefault(catalogCacheKey, digest)
		c.log.DebugContext(ctx, "catalog digest refreshed",
			slog.Int("courses", len(entries)),
		)
		return digest, nil
	})
	if err != nil {
		return "", err
	}
	return digest.(string), nil
}

// FormatCatalogDigest renders catalog entries as one line per course:
// code, title, level, credits, and direct prerequisites ("None" when the
// course has no prerequisites).
func FormatCatalogDigest(entries []CatalogEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		prereqs := "None"
		if len(e.PrereqCodes) > 0 {
			prereqs = strings.Join(e.PrereqCodes, ", ")
		}
		lines = append(lines, fmt.Sprintf("%s - %s | Level %d | %d credits | Prereqs: %s",
			e.Code, e.Title, e.Level, e.Credits, prereqs))
	}
	return strings.Join(lines, "\n")
}
