package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/isochrone-map/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	conn   *Redis
	logger *zap.Logger
}

func NewCacheRepository(conn *Redis) repository.CacheRepository {
	return &cacheRepository{
		conn:   conn,
		logger: conn.logger,
	}
}

func (r *cacheRepository) GetTile(ctx context.Context, z, x, y int) ([]byte, error) {
	key := r.conn.TileKey(z, x, y)

	val, err := r.conn.Client().Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get tile from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) SetTile(ctx context.Context, z, x, y int, data []byte) error {
	key := r.conn.TileKey(z, x, y)

	err := r.conn.Client().Set(ctx, key, data, r.conn.TileTTL()).Err()
	if err != nil {
		r.logger.Error("Failed to cache tile", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Tile cached", zap.String("key", key), zap.Int("size", len(data)))
	return nil
}
