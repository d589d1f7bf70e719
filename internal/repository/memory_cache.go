package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemoryCacheSize is the number of responses kept in process when no size is configured
const DefaultMemoryCacheSize = 1000

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process CacheRepository used when Redis is disabled.
// It holds at most size entries, evicting least recently used first, and
// sweeps entries older than maxTTL in the background. Shorter per-entry TTLs
// are checked on read.
type MemoryCache struct {
	entries *expirable.LRU[string, memoryEntry]
	now     func() time.Time
}

// NewMemoryCache creates a bounded cache. A non-positive size falls back to
// DefaultMemoryCacheSize and a non-positive maxTTL disables the sweep.
func NewMemoryCache(size int, maxTTL time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultMemoryCacheSize
	}
	return &MemoryCache{
		entries: expirable.NewLRU[string, memoryEntry](size, nil, maxTTL),
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	entry, ok := m.entries.Get(key)
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.entries.Remove(key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.entries.Add(key, entry)
	return nil
}

func (m *MemoryCache) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored entries
func (m *MemoryCache) Len() int {
	return m.entries.Len()
}

// Purge drops every stored entry
func (m *MemoryCache) Purge() {
	m.entries.Purge()
}
