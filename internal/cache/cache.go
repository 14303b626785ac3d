// Package cache provides small response caches keyed per user.
//
// Two implementations are available: an in-process LRU with TTL for
// single-instance deployments, and a Redis-backed cache for deployments
// that share state across instances. A nil Cache disables caching.
package cache

import "context"

// Cache stores serialized response payloads under string keys.
type Cache interface {
	// Get returns the cached payload for key, or false when absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores payload under key until the cache's TTL elapses.
	Set(ctx context.Context, key string, payload []byte)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string)
}
