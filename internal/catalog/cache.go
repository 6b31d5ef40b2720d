package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/noah-isme/codearena-go-api/internal/models"
	"github.com/noah-isme/codearena-go-api/internal/observability"
)

// Cache owns the in-memory problem snapshot. It is the single writer; the
// snapshot is replaced atomically on refresh and stays valid until the next
// explicit refresh. There is no background expiry.
type Cache struct {
	sources []Source
	logger  zerolog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	snapshot []models.Problem
	warmed   bool
}

// New builds a cache over the given sources. The snapshot starts cold and
// is populated by the first Snapshot or Refresh call.
func New(sources []Source, logger zerolog.Logger) *Cache {
	return &Cache{
		sources: sources,
		logger:  logger.With().Str("component", "catalog_cache").Logger(),
	}
}

// Snapshot returns the current problem set. The first call triggers a
// synchronous refresh; concurrent cold readers share that one refresh
// instead of each hitting upstream. Warm reads return the same slice until
// the next refresh, so callers must treat it as read-only.
func (c *Cache) Snapshot(ctx context.Context) []models.Problem {
	c.mu.RLock()
	if c.warmed {
		snapshot := c.snapshot
		c.mu.RUnlock()
		return snapshot
	}
	c.mu.RUnlock()

	return c.Refresh(ctx)
}

// Refresh fetches every source concurrently, concatenates the results and
// swaps the snapshot. Problems duplicated across sources are kept as-is.
// When every source fails or returns nothing, the bundled fallback set is
// installed instead; Refresh never surfaces an upstream error.
//
// Concurrent calls share one in-flight refresh.
func (c *Cache) Refresh(ctx context.Context) []models.Problem {
	result, _, _ := c.group.Do("refresh", func() (any, error) {
		problems := c.fetchAll(ctx)
		if len(problems) == 0 {
			c.logger.Warn().Msg("all catalog sources failed, installing fallback dataset")
			problems = fallbackProblems()
		}

		c.mu.Lock()
		c.snapshot = problems
		c.warmed = true
		c.mu.Unlock()

		observability.CatalogProblems().Set(float64(len(problems)))
		c.logger.Info().Int("problems", len(problems)).Msg("catalog snapshot refreshed")

		return problems, nil
	})

	return result.([]models.Problem)
}

// Size reports the number of problems in the current snapshot without
// triggering a warm-up.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshot)
}

func (c *Cache) fetchAll(ctx context.Context) []models.Problem {
	results := make([][]models.Problem, len(c.sources))

	var wg sync.WaitGroup
	for i, source := range c.sources {
		wg.Add(1)
		go func(i int, source Source) {
			defer wg.Done()

			problems, err := source.FetchBatch(ctx)
			if err != nil {
				observability.CatalogRefreshes().WithLabelValues(source.Name(), "error").Inc()
				c.logger.Warn().Err(err).Str("source", source.Name()).Msg("catalog source failed")
				return
			}

			observability.CatalogRefreshes().WithLabelValues(source.Name(), "ok").Inc()
			c.logger.Info().Str("source", source.Name()).Int("problems", len(problems)).Msg("catalog source fetched")
			results[i] = problems
		}(i, source)
	}
	wg.Wait()

	// Concatenate in declaration order so refreshes are deterministic for
	// identical upstream answers.
	var merged []models.Problem
	for _, problems := range results {
		merged = append(merged, problems...)
	}

	return merged
}
