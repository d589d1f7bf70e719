package repository

import (
	"context"
	"time"
)

// CacheRepository defines the interface for the response cache
type CacheRepository interface {
	// Get returns the cached value for key; ok is false on a miss
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key for ttl; a zero ttl never expires
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Ping checks the cache backend is reachable
	Ping(ctx context.Context) error
}
