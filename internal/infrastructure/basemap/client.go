package basemap

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/isochrone-map/internal/config"
	"github.com/isochrone-map/internal/domain/repository"
	"github.com/isochrone-map/internal/pkg/metrics"
	"go.uber.org/zap"
)

// maxTileBytes - защита от неожиданно больших ответов тайл-сервера
const maxTileBytes = 4 << 20

type client struct {
	httpClient  *http.Client
	urlTemplate string
	userAgent   string
	cache       repository.CacheRepository
	logger      *zap.Logger
}

// NewClient создает клиент тайл-сервера подложки (slippy map, {z}/{x}/{y})
func NewClient(
	cfg *config.BasemapConfig,
	cache repository.CacheRepository,
	logger *zap.Logger,
) repository.TileRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		urlTemplate: cfg.TileURL,
		userAgent:   cfg.UserAgent,
		cache:       cache,
		logger:      logger,
	}
}

func (c *client) tileURL(z, x, y int) string {
	return strings.NewReplacer(
		"{z}", strconv.Itoa(z),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	).Replace(c.urlTemplate)
}

// GetTile возвращает тайл из кеша или с тайл-сервера
func (c *client) GetTile(ctx context.Context, z, x, y int) (image.Image, error) {
	cached, err := c.cache.GetTile(ctx, z, x, y)
	if err == nil && cached != nil {
		img, _, decodeErr := image.Decode(bytes.NewReader(cached))
		if decodeErr == nil {
			metrics.TileCacheHits.Inc()
			return img, nil
		}
		c.logger.Warn("Failed to decode cached tile, refetching",
			zap.Int("z", z), zap.Int("x", x), zap.Int("y", y), zap.Error(decodeErr))
	}
	metrics.TileCacheMisses.Inc()

	data, err := c.fetch(ctx, z, x, y)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode tile %d/%d/%d: %w", z, x, y, err)
	}

	if err := c.cache.SetTile(ctx, z, x, y, data); err != nil {
		c.logger.Warn("Failed to cache tile",
			zap.Int("z", z), zap.Int("x", x), zap.Int("y", y), zap.Error(err))
	}

	return img, nil
}

func (c *client) fetch(ctx context.Context, z, x, y int) ([]byte, error) {
	url := c.tileURL(z, x, y)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tile request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to fetch tile", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch tile %d/%d/%d: %w", z, x, y, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Tile server returned error",
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("tile fetch failed: %d/%d/%d: %s", z, x, y, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTileBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read tile %d/%d/%d: %w", z, x, y, err)
	}

	c.logger.Debug("Tile fetched", zap.String("url", url), zap.Int("size", len(data)))
	return data, nil
}
