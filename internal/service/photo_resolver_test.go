package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"guild-hub-api/internal/cache"
	"guild-hub-api/internal/client"
	"guild-hub-api/internal/metrics"
)

func newResolverMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func newResolver(c cache.Cache, storage client.StorageClient, expiry time.Duration) PhotoResolver {
	return NewPhotoResolver(c, storage, expiry, newResolverMetrics(), zap.NewNop())
}

type signCounter struct {
	mu    sync.Mutex
	count int
}

func (s *signCounter) inc() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
}

func (s *signCounter) value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func TestPhotoResolver_ResolveMissSignsAndCaches(t *testing.T) {
	mockCache := cache.NewMockCache()
	storage := client.NewMockStorageClient()
	resolver := newResolver(mockCache, storage, 15*time.Minute)

	id := uuid.New()
	urls := resolver.Resolve(context.Background(), "company", id, []string{"a.jpg", "b.jpg"})

	assert.Len(t, urls, 2)
	assert.True(t, mockCache.Contains("v1:company:"+id.String()+":photos"))
}

func TestPhotoResolver_ResolveHitSkipsStorage(t *testing.T) {
	mockCache := cache.NewMockCache()
	counter := &signCounter{}
	storage := client.NewMockStorageClient()
	storage.SignedURLFunc = func(ctx context.Context, key string, expiry time.Duration) (string, error) {
		counter.inc()
		return "https://signed/" + key, nil
	}
	resolver := newResolver(mockCache, storage, 15*time.Minute)

	id := uuid.New()
	cachedURLs := []string{"https://cached/a.jpg"}
	payload, err := json.Marshal(cachedURLs)
	require.NoError(t, err)
	require.NoError(t, mockCache.Set(context.Background(), "v1:company:"+id.String()+":photos", payload, time.Minute))

	urls := resolver.Resolve(context.Background(), "company", id, []string{"a.jpg"})

	assert.Equal(t, cachedURLs, urls)
	assert.Equal(t, 0, counter.value())
}

func TestPhotoResolver_ResolveEmptyKeys(t *testing.T) {
	mockCache := cache.NewMockCache()
	resolver := newResolver(mockCache, client.NewMockStorageClient(), 15*time.Minute)

	urls := resolver.Resolve(context.Background(), "company", uuid.New(), nil)
	assert.Empty(t, urls)
}

func TestPhotoResolver_CacheTTLKeepsSafetyMargin(t *testing.T) {
	mockCache := cache.NewMockCache()
	var capturedTTL time.Duration
	mockCache.SetFunc = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		capturedTTL = ttl
		return nil
	}
	resolver := newResolver(mockCache, client.NewMockStorageClient(), 15*time.Minute)

	resolver.Resolve(context.Background(), "company", uuid.New(), []string{"a.jpg"})
	assert.Equal(t, 14*time.Minute, capturedTTL)
}

func TestPhotoResolver_CacheTTLFallsBackForShortExpiry(t *testing.T) {
	mockCache := cache.NewMockCache()
	var capturedTTL time.Duration
	mockCache.SetFunc = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		capturedTTL = ttl
		return nil
	}
	resolver := newResolver(mockCache, client.NewMockStorageClient(), 30*time.Second)

	resolver.Resolve(context.Background(), "company", uuid.New(), []string{"a.jpg"})
	assert.Equal(t, 30*time.Second, capturedTTL)
}

func TestPhotoResolver_PartialSignFailureDropsKey(t *testing.T) {
	mockCache := cache.NewMockCache()
	storage := client.NewMockStorageClient()
	storage.SignedURLFunc = func(ctx context.Context, key string, expiry time.Duration) (string, error) {
		if key == "broken.jpg" {
			return "", errors.New("sign failed")
		}
		return "https://signed/" + key, nil
	}
	resolver := newResolver(mockCache, storage, 15*time.Minute)

	id := uuid.New()
	urls := resolver.Resolve(context.Background(), "company", id, []string{"a.jpg", "broken.jpg", "c.jpg"})

	assert.ElementsMatch(t, []string{"https://signed/a.jpg", "https://signed/c.jpg"}, urls)
	assert.True(t, mockCache.Contains("v1:company:"+id.String()+":photos"))
}

func TestPhotoResolver_AllSignFailuresNotCached(t *testing.T) {
	mockCache := cache.NewMockCache()
	storage := client.NewMockStorageClient()
	storage.SignedURLFunc = func(ctx context.Context, key string, expiry time.Duration) (string, error) {
		return "", errors.New("sign failed")
	}
	resolver := newResolver(mockCache, storage, 15*time.Minute)

	id := uuid.New()
	urls := resolver.Resolve(context.Background(), "company", id, []string{"a.jpg"})

	assert.Empty(t, urls)
	assert.False(t, mockCache.Contains("v1:company:"+id.String()+":photos"))
}

func TestPhotoResolver_CacheErrorDegradesToMiss(t *testing.T) {
	mockCache := cache.NewMockCache()
	mockCache.GetFunc = func(ctx context.Context, key string) ([]byte, error) {
		return nil, errors.New("redis down")
	}
	mockCache.SetFunc = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		return errors.New("redis down")
	}
	resolver := newResolver(mockCache, client.NewMockStorageClient(), 15*time.Minute)

	urls := resolver.Resolve(context.Background(), "company", uuid.New(), []string{"a.jpg"})
	assert.Len(t, urls, 1)
}

func TestPhotoResolver_ResolveBatch(t *testing.T) {
	mockCache := cache.NewMockCache()
	getManyCalls := 0
	mockCache.GetManyFunc = func(ctx context.Context, keys []string) ([][]byte, error) {
		getManyCalls++
		out := make([][]byte, len(keys))
		for i, k := range keys {
			out[i], _ = mockCache.Get(ctx, k)
		}
		return out, nil
	}
	storage := client.NewMockStorageClient()
	resolver := newResolver(mockCache, storage, 15*time.Minute)

	hitID := uuid.New()
	missID := uuid.New()
	cachedURLs := []string{"https://cached/x.jpg"}
	payload, err := json.Marshal(cachedURLs)
	require.NoError(t, err)
	require.NoError(t, mockCache.Set(context.Background(), "v1:company:"+hitID.String()+":photos", payload, time.Minute))

	results := resolver.ResolveBatch(context.Background(), "company", []PhotoSet{
		{ID: hitID, Keys: []string{"x.jpg"}},
		{ID: missID, Keys: []string{"y.jpg", "z.jpg"}},
		{ID: uuid.New(), Keys: nil},
	})

	assert.Equal(t, 1, getManyCalls)
	require.Len(t, results, 3)
	assert.Equal(t, cachedURLs, results[0])
	assert.Len(t, results[1], 2)
	assert.Empty(t, results[2])
}

func TestPhotoResolver_ResolveBatchEmpty(t *testing.T) {
	resolver := newResolver(cache.NewMockCache(), client.NewMockStorageClient(), 15*time.Minute)
	assert.Empty(t, resolver.ResolveBatch(context.Background(), "company", nil))
}

func TestPhotoResolver_ResolveBatchCacheDown(t *testing.T) {
	mockCache := cache.NewMockCache()
	mockCache.GetManyFunc = func(ctx context.Context, keys []string) ([][]byte, error) {
		return nil, errors.New("redis down")
	}
	resolver := newResolver(mockCache, client.NewMockStorageClient(), 15*time.Minute)

	results := resolver.ResolveBatch(context.Background(), "company", []PhotoSet{
		{ID: uuid.New(), Keys: []string{"a.jpg"}},
	})
	require.Len(t, results, 1)
	assert.Len(t, results[0], 1)
}

func TestPhotoResolver_CacheURLsAndEvict(t *testing.T) {
	mockCache := cache.NewMockCache()
	resolver := newResolver(mockCache, client.NewMockStorageClient(), 15*time.Minute)

	id := uuid.New()
	cacheKey := "v1:guild:" + id.String() + ":photos"

	resolver.CacheURLs(context.Background(), "guild", id, []string{"https://signed/a.jpg"})
	assert.True(t, mockCache.Contains(cacheKey))

	resolver.Evict(context.Background(), "guild", id)
	assert.False(t, mockCache.Contains(cacheKey))

	// caching an empty list is a no-op
	resolver.CacheURLs(context.Background(), "guild", id, nil)
	assert.False(t, mockCache.Contains(cacheKey))
}
