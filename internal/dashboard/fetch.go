package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chuehnone/developers-dashboard/internal/cache"
	"github.com/chuehnone/developers-dashboard/pkg/retry"
)

// Cache keys of the orchestrated fetches. The v2 suffix versions the
// cached shapes: bumping it invalidates entries written by older
// deployments.
const (
	metricsCacheKeyPrefix   = "metrics_v2_"
	githubCacheKey          = "github_v2"
	jiraCacheKey            = "jira_v2"
	copilotCacheKeyPrefix   = "copilot_v2_"
	developerCacheKeyPrefix = "developer_v2_"
)

// apiRetryConfig governs upstream fetch retries. Package-level so tests
// can shrink the delays.
var apiRetryConfig = retry.APIConfig()

// fetchWithCache resolves a value through the resilience chain: valid
// cache entry first, then a retried upstream fetch, then the stale
// cache entry, then the mock fallback when one is configured. Only
// after every rung fails does the fetch error surface.
func fetchWithCache[T any](
	ctx context.Context,
	store *cache.Store,
	logger *zap.SugaredLogger,
	key string,
	ttl time.Duration,
	fetch func(ctx context.Context) (T, error),
	fallback func() (T, bool),
) (T, error) {
	if ttl <= 0 {
		ttl = store.DefaultTTL()
	}

	if value, ok := cache.Get[T](store, key); ok {
		logger.Debugw("cache hit", "key", key)
		return value, nil
	}

	value, err := retry.DoWithResult(ctx, apiRetryConfig, func() (T, error) {
		return fetch(ctx)
	})
	if err == nil {
		if cacheErr := cache.Set(store, key, value, ttl); cacheErr != nil {
			logger.Warnw("failed to cache fetched data", "key", key, "error", cacheErr)
		}
		return value, nil
	}

	logger.Errorw("upstream fetch failed after retries", "key", key, "error", err)

	if stale, ok := cache.GetStale[T](store, key); ok {
		logger.Warnw("serving stale cache entry", "key", key)
		return stale, nil
	}

	if fallback != nil {
		if value, ok := fallback(); ok {
			logger.Warnw("serving mock fallback data", "key", key)
			return value, nil
		}
	}

	var zero T
	return zero, err
}

// fetchWithRefresh serves a valid cached value immediately and
// triggers a detached refetch so the entry stays warm. Refresh errors
// are logged, never surfaced: the next request retries. Expired or
// missing entries take the blocking fetchWithCache path instead.
func fetchWithRefresh[T any](
	ctx context.Context,
	store *cache.Store,
	logger *zap.SugaredLogger,
	key string,
	ttl time.Duration,
	fetch func(ctx context.Context) (T, error),
	fallback func() (T, bool),
) (T, error) {
	if ttl <= 0 {
		ttl = store.DefaultTTL()
	}

	cached, ok := cache.Get[T](store, key)
	if !ok {
		return fetchWithCache(ctx, store, logger, key, ttl, fetch, fallback)
	}

	go func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		value, err := fetch(refreshCtx)
		if err != nil {
			logger.Warnw("background refresh failed", "key", key, "error", err)
			return
		}
		if err := cache.Set(store, key, value, ttl); err != nil {
			logger.Warnw("background refresh cache write failed", "key", key, "error", err)
		}
	}()

	return cached, nil
}
