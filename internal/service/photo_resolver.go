package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guild-hub-api/internal/cache"
	"guild-hub-api/internal/client"
	"guild-hub-api/internal/metrics"
)

// maxConcurrentTransfers bounds simultaneous object-storage calls per request
const maxConcurrentTransfers = 4

// cacheTTLSafetyMargin keeps cached entries expiring before the signed URLs
// they contain do, so the cache can never serve a dead link.
const cacheTTLSafetyMargin = 60 * time.Second

// PhotoSet is one aggregate's stored photo keys, as seen by the resolver
type PhotoSet struct {
	ID   uuid.UUID
	Keys []string
}

// PhotoResolver turns stored object keys into time-limited signed URLs using
// a cache-aside strategy. The cache is advisory: any cache error degrades to
// a miss, and storage errors on individual keys drop that key's URL rather
// than failing the request.
type PhotoResolver interface {
	// ResolveBatch resolves URLs for many aggregates with one cache multi-get.
	// The result is positional: result[i] holds the URLs for owners[i].
	ResolveBatch(ctx context.Context, resourceType string, owners []PhotoSet) [][]string
	// Resolve resolves URLs for a single aggregate
	Resolve(ctx context.Context, resourceType string, id uuid.UUID, keys []string) []string
	// CacheURLs stores freshly generated URLs, used on the write path where
	// the URLs are already in hand
	CacheURLs(ctx context.Context, resourceType string, id uuid.UUID, urls []string)
	// Evict drops the cache entry, used when an aggregate's photo list
	// becomes empty or the aggregate is deleted
	Evict(ctx context.Context, resourceType string, id uuid.UUID)
}

// photoResolverImpl is the implementation of PhotoResolver
type photoResolverImpl struct {
	cache     cache.Cache
	storage   client.StorageClient
	urlExpiry time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewPhotoResolver creates a new instance of PhotoResolver. urlExpiry is the
// lifetime of generated signed URLs; cache entries live one safety margin
// less than that.
func NewPhotoResolver(
	c cache.Cache,
	storage client.StorageClient,
	urlExpiry time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) PhotoResolver {
	return &photoResolverImpl{
		cache:     c,
		storage:   storage,
		urlExpiry: urlExpiry,
		metrics:   m,
		logger:    logger,
	}
}

// photoCacheKey builds the cache key for one aggregate's photo URLs
func photoCacheKey(resourceType string, id uuid.UUID) string {
	return fmt.Sprintf("v1:%s:%s:photos", resourceType, id)
}

func (r *photoResolverImpl) ResolveBatch(ctx context.Context, resourceType string, owners []PhotoSet) [][]string {
	results := make([][]string, len(owners))
	if len(owners) == 0 {
		return results
	}

	keys := make([]string, len(owners))
	for i, owner := range owners {
		keys[i] = photoCacheKey(resourceType, owner.ID)
	}

	cached, err := r.cache.GetMany(ctx, keys)
	if err != nil {
		// cache down: treat every lookup as a miss
		r.logger.Warn("photo URL cache multi-get failed, regenerating",
			zap.String("resource_type", resourceType),
			zap.Error(err))
		cached = make([][]byte, len(owners))
	}

	for i, owner := range owners {
		if urls := decodeURLList(cached[i]); len(urls) > 0 {
			r.metrics.IncrementCacheHit()
			results[i] = urls
			continue
		}
		r.metrics.IncrementCacheMiss()
		results[i] = r.generateAndCache(ctx, resourceType, owner.ID, owner.Keys)
	}
	return results
}

func (r *photoResolverImpl) Resolve(ctx context.Context, resourceType string, id uuid.UUID, keys []string) []string {
	cacheKey := photoCacheKey(resourceType, id)

	cached, err := r.cache.Get(ctx, cacheKey)
	if err != nil {
		r.logger.Warn("photo URL cache get failed, regenerating",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	} else if urls := decodeURLList(cached); len(urls) > 0 {
		r.metrics.IncrementCacheHit()
		return urls
	}

	r.metrics.IncrementCacheMiss()
	return r.generateAndCache(ctx, resourceType, id, keys)
}

func (r *photoResolverImpl) CacheURLs(ctx context.Context, resourceType string, id uuid.UUID, urls []string) {
	if len(urls) == 0 {
		return
	}
	r.storeURLs(ctx, photoCacheKey(resourceType, id), urls)
}

func (r *photoResolverImpl) Evict(ctx context.Context, resourceType string, id uuid.UUID) {
	cacheKey := photoCacheKey(resourceType, id)
	if err := r.cache.Remove(ctx, cacheKey); err != nil {
		r.logger.Warn("failed to evict photo URL cache entry",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	}
}

// generateAndCache signs every object key concurrently and caches the result
// when at least one URL came back. Per-key failures are logged and dropped,
// so an aggregate can end up with fewer URLs than keys.
func (r *photoResolverImpl) generateAndCache(ctx context.Context, resourceType string, id uuid.UUID, keys []string) []string {
	if len(keys) == 0 {
		return []string{}
	}

	signed := make([]string, len(keys))
	sem := make(chan struct{}, maxConcurrentTransfers)
	var wg sync.WaitGroup

	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			url, err := r.storage.SignedURL(ctx, key, r.urlExpiry)
			r.metrics.ObserveStorageOperation("sign", err)
			if err != nil {
				r.logger.Warn("failed to sign photo URL",
					zap.String("object_key", key),
					zap.Error(err))
				return
			}
			signed[i] = url
		}(i, key)
	}
	wg.Wait()

	urls := make([]string, 0, len(keys))
	for _, u := range signed {
		if u != "" {
			urls = append(urls, u)
		}
	}

	if len(urls) > 0 {
		r.storeURLs(ctx, photoCacheKey(resourceType, id), urls)
	}
	return urls
}

func (r *photoResolverImpl) storeURLs(ctx context.Context, cacheKey string, urls []string) {
	payload, err := json.Marshal(urls)
	if err != nil {
		r.logger.Warn("failed to encode photo URL list", zap.Error(err))
		return
	}

	ttl := r.urlExpiry - cacheTTLSafetyMargin
	if ttl <= 0 {
		ttl = r.urlExpiry
	}
	if err := r.cache.Set(ctx, cacheKey, payload, ttl); err != nil {
		r.logger.Warn("failed to cache photo URL list",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	}
}

func decodeURLList(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil
	}
	return urls
}
