package cache

import "context"

// Persistent is the L2 durable-store collaborator the Adaptive manager
// requires. The actual backend (Redis, DynamoDB, disk...) is injected; the
// core only depends on this four-method contract (spec §4.6). Shaped after
// the teacher's internal/di/cache.NoOpCache / persistence.cache.Cache
// interface.
type Persistent interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// NoOpPersistent is a Persistent that stores nothing, for callers that
// want a single-tier (L1-only) cache. Grounded on the teacher's
// internal/di/cache.NoOpCache.
type NoOpPersistent struct{}

func (NoOpPersistent) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }
func (NoOpPersistent) Set(ctx context.Context, key string, value []byte) error   { return nil }
func (NoOpPersistent) Delete(ctx context.Context, key string) error              { return nil }
func (NoOpPersistent) Clear(ctx context.Context) error                          { return nil }
