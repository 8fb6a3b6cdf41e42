package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys of already-handled requests
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets a key so the request can be retried. Releasing an
	// unknown key is not an error.
	Release(ctx context.Context, key string) error

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}
