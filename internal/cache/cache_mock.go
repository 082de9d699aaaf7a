package cache

import (
	"context"
	"sync"
	"time"
)

// MockCache implements Cache in memory for testing. Function overrides take
// precedence over the built-in map behavior.
type MockCache struct {
	mu    sync.Mutex
	store map[string][]byte

	SetFunc     func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	GetFunc     func(ctx context.Context, key string) ([]byte, error)
	RemoveFunc  func(ctx context.Context, key string) error
	GetManyFunc func(ctx context.Context, keys []string) ([][]byte, error)
}

// NewMockCache creates an empty in-memory cache for testing
func NewMockCache() *MockCache {
	return &MockCache{store: make(map[string][]byte)}
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store[key], nil
}

func (m *MockCache) Remove(ctx context.Context, key string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

func (m *MockCache) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	if m.GetManyFunc != nil {
		return m.GetManyFunc(ctx, keys)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.store[k]
	}
	return out, nil
}

// Contains reports whether a key is currently stored (test helper)
func (m *MockCache) Contains(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.store[key]
	return ok
}
