package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/isochrone-map/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	dialTimeout = 2 * time.Second
	opTimeout   = 500 * time.Millisecond
)

// Redis - подключение к Redis, используемое как кеш тайлов подложки
type Redis struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
	tileTTL   time.Duration
}

func NewRedis(cfg *config.RedisConfig, cacheCfg *config.CacheConfig, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis tile cache connected",
		zap.String("addr", client.Options().Addr),
		zap.String("key_prefix", cfg.KeyPrefix),
		zap.Duration("tile_ttl", cacheCfg.TilesCacheTTL),
	)

	return &Redis{
		client:    client,
		logger:    logger,
		keyPrefix: cfg.KeyPrefix,
		tileTTL:   cacheCfg.TilesCacheTTL,
	}, nil
}

// TileKey - ключ тайла подложки: {prefix}:tile:basemap:{z}:{x}:{y}
func (r *Redis) TileKey(z, x, y int) string {
	key := fmt.Sprintf("tile:basemap:%d:%d:%d", z, x, y)
	if r.keyPrefix == "" {
		return key
	}
	return r.keyPrefix + ":" + key
}

// TileTTL - срок жизни закешированного тайла
func (r *Redis) TileTTL() time.Duration {
	return r.tileTTL
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}

func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Client() *redis.Client {
	return r.client
}
