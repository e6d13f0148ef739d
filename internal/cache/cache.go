// Package cache provides a small byte-value cache used for per-tenant
// bidding settings. Two implementations exist: an in-process map for
// development and single-instance deployments, and Redis for multi-instance
// deployments where settings changes must propagate across processes.
package cache

import (
	"context"
	"time"
)

// Cache is the interface consumed by the settings service.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error
}

// CacheError is a sentinel error type for cache operations.
type CacheError string

func (e CacheError) Error() string { return string(e) }

// ErrCacheMiss indicates the key was not found in cache.
const ErrCacheMiss CacheError = "cache miss"
