package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock lets tests move time forward
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) (*InMemoryIdempotencyStore, *fakeClock) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	clock := &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	store.now = clock.Now
	return store, clock
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark wins, second is rejected", func(t *testing.T) {
		store, _ := newTestStore(t)

		fresh, err := store.MarkProcessed(ctx, "order:create:abc", time.Hour)
		require.NoError(t, err)
		assert.True(t, fresh)

		fresh, err = store.MarkProcessed(ctx, "order:create:abc", time.Hour)
		require.NoError(t, err)
		assert.False(t, fresh)

		processed, err := store.IsProcessed(ctx, "order:create:abc")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("key can be reused after expiry", func(t *testing.T) {
		store, clock := newTestStore(t)

		_, err := store.MarkProcessed(ctx, "k", time.Minute)
		require.NoError(t, err)
		clock.Advance(time.Minute)

		processed, err := store.IsProcessed(ctx, "k")
		require.NoError(t, err)
		assert.False(t, processed)

		fresh, err := store.MarkProcessed(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.True(t, fresh)
	})

	t.Run("released key can be marked again", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.MarkProcessed(ctx, "k", time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Release(ctx, "k"))

		processed, err := store.IsProcessed(ctx, "k")
		require.NoError(t, err)
		assert.False(t, processed)

		fresh, err := store.MarkProcessed(ctx, "k", time.Hour)
		require.NoError(t, err)
		assert.True(t, fresh)

		assert.NoError(t, store.Release(ctx, "never-marked"))
	})

	t.Run("unknown key is not processed", func(t *testing.T) {
		store, _ := newTestStore(t)
		processed, err := store.IsProcessed(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("concurrent marks admit exactly one", func(t *testing.T) {
		store, _ := newTestStore(t)

		var winners atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if fresh, _ := store.MarkProcessed(ctx, "same", time.Hour); fresh {
					winners.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), winners.Load())
	})
}

func TestInMemoryIdempotencyStore_Sweep(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	_, _ = store.MarkProcessed(ctx, "short", time.Minute)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	require.Equal(t, 2, store.Len())

	clock.Advance(2 * time.Minute)
	store.sweep()
	assert.Equal(t, 1, store.Len())

	processed, _ := store.IsProcessed(ctx, "long")
	assert.True(t, processed)
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore(10 * time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestNewIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled returns nil", func(t *testing.T) {
		store, err := NewIdempotencyStore(ctx, &config.Config{}, zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, store)
	})

	t.Run("memory backend", func(t *testing.T) {
		cfg := &config.Config{Idempotency: config.IdempotencyConfig{Enabled: true, Backend: "memory"}}
		store, err := NewIdempotencyStore(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unreachable redis fails", func(t *testing.T) {
		cfg := &config.Config{
			Idempotency: config.IdempotencyConfig{Enabled: true, Backend: "redis"},
			Redis:       config.RedisConfig{Host: "127.0.0.1", Port: 1},
		}
		_, err := NewIdempotencyStore(ctx, cfg, zap.NewNop())
		assert.Error(t, err)
	})
}
