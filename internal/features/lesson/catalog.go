package lesson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/pkg/cache"
	"github.com/mo-amir99/langswap-server-go/pkg/metrics"
)

const generationKey = "lessons:generation"

// Catalog serves lesson listings through the cache. Entries are keyed by the
// current catalog generation, so Invalidate only needs to bump a counter.
type Catalog struct {
	db     *gorm.DB
	cache  cache.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCatalog creates a cached catalog reader.
func NewCatalog(db *gorm.DB, cacheClient cache.Client, ttl time.Duration, logger *slog.Logger) *Catalog {
	return &Catalog{
		db:     db,
		cache:  cacheClient,
		ttl:    ttl,
		logger: logger,
	}
}

// List returns the filtered catalog, reading through the cache.
// A failing cache never fails the request.
func (c *Catalog) List(ctx context.Context, filters ListFilters) ([]Lesson, error) {
	key := c.listKey(ctx, filters)

	var cached []Lesson
	err := cache.GetJSON(ctx, c.cache, key, &cached)
	switch {
	case err == nil:
		metrics.RecordCatalogCache(true)
		return cached, nil
	case !errors.Is(err, cache.ErrMiss):
		c.logger.Warn("lesson cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	metrics.RecordCatalogCache(false)

	lessons, err := List(c.db.WithContext(ctx), filters)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, c.cache, key, lessons, c.ttl); err != nil {
		c.logger.Warn("lesson cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return lessons, nil
}

// Invalidate makes every cached listing stale.
func (c *Catalog) Invalidate(ctx context.Context) {
	if _, err := c.cache.Increment(ctx, generationKey); err != nil {
		c.logger.Warn("lesson cache invalidation failed", slog.String("error", err.Error()))
	}
}

func (c *Catalog) listKey(ctx context.Context, filters ListFilters) string {
	generation, err := c.cache.Get(ctx, generationKey)
	if err != nil {
		generation = "0"
	}
	if _, convErr := strconv.ParseInt(generation, 10, 64); convErr != nil {
		generation = "0"
	}
	return fmt.Sprintf("lessons:v%s:category=%s:mode=%s", generation, filters.Category, filters.LanguageMode)
}
