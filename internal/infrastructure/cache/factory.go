package cache

import (
	"context"

	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/restaurant/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore builds the store selected by cfg.Idempotency.Backend.
// It returns nil when idempotency is disabled.
func NewIdempotencyStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if !cfg.Idempotency.Enabled {
		logger.Info("Order idempotency disabled")
		return nil, nil
	}
	if cfg.Idempotency.Backend == "redis" {
		store, err := NewRedisIdempotencyStore(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info("Order idempotency enabled", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.Addr()))
		return store, nil
	}
	logger.Info("Order idempotency enabled", zap.String("backend", "memory"))
	return NewInMemoryIdempotencyStore(0), nil
}
