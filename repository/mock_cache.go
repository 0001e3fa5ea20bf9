package repository

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// MockCache is an in-process CacheRepository.
type MockCache struct {
	mu   sync.Mutex
	Data map[string]cacheEntry
	now  func() time.Time
}

func NewMockCache() *MockCache {
	return &MockCache{
		Data: make(map[string]cacheEntry),
		now:  time.Now,
	}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.Data[key]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.Data, key)
		return "", false
	}
	return entry.value, true
}

func (m *MockCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.Data[key] = entry
	return nil
}
