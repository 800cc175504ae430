// Package redis defines the cache service abstraction. The service layer
// depends on these interfaces rather than on a concrete client.
package redis

import (
	"context"
	"time"
)

// CacheService is the synchronous cache surface.
type CacheService interface {
	// Set stores a value under key with a ttl (0 means no expiry).
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get returns the value for key, or "" with a nil error when absent.
	Get(ctx context.Context, key string) (string, error)
	// GetOrError returns the value for key, or CodeNotFound when absent.
	GetOrError(ctx context.Context, key string) (string, error)
	// Delete removes key if present.
	Delete(ctx context.Context, key string) error

	// AddToSet adds members to the set at key.
	AddToSet(ctx context.Context, key string, members ...interface{}) error
	// GetSetMembers returns every member of the set at key.
	GetSetMembers(ctx context.Context, key string) ([]string, error)
	// RemoveFromSet removes members from the set at key.
	RemoveFromSet(ctx context.Context, key string, members ...interface{}) error
}

// AsyncCacheService adds a fire-and-forget task queue on top of
// CacheService, used for cache writes that must not block the caller.
type AsyncCacheService interface {
	CacheService
	// SubmitTask queues action for background execution. When the queue
	// is full the action runs synchronously instead of being dropped.
	SubmitTask(action func())
}
