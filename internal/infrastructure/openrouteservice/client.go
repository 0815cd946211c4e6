package openrouteservice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/isochrone-map/internal/config"
	"github.com/isochrone-map/internal/domain"
	"github.com/isochrone-map/internal/domain/repository"
	"github.com/isochrone-map/internal/pkg/metrics"
	"go.uber.org/zap"
)

// maxErrorBody ограничивает размер тела ответа, сохраняемого в ошибке
const maxErrorBody = 64 << 10

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	profile    string
	logger     *zap.Logger
}

// isochroneRequest - тело запроса POST /v2/isochrones/{profile}
type isochroneRequest struct {
	Locations [][2]float64 `json:"locations"`
	Range     []int        `json:"range"`
}

// NewClient создает новый клиент для openrouteservice Isochrones API
func NewClient(cfg *config.RoutingConfig, logger *zap.Logger) repository.IsochroneRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		profile: cfg.Profile,
		logger:  logger,
	}
}

// GetIsochrones выполняет одну попытку запроса изохрон, без повторов
func (c *client) GetIsochrones(
	ctx context.Context,
	origin domain.Coordinate,
	thresholds domain.ThresholdSet,
) (*domain.IsochroneResponse, error) {
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("thresholds cannot be empty")
	}

	payload, err := json.Marshal(isochroneRequest{
		Locations: [][2]float64{origin.LonLat()},
		Range:     thresholds.Seconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/isochrones/%s", c.baseURL, c.profile)

	c.logger.Debug("Calling openrouteservice Isochrones API",
		zap.String("url", url),
		zap.Float64("lat", origin.Lat),
		zap.Float64("lon", origin.Lon),
		zap.Ints("range", thresholds.Seconds()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	metrics.ProviderResponses.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("openrouteservice API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, &domain.ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var isoResp domain.IsochroneResponse
	if err := json.NewDecoder(resp.Body).Decode(&isoResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("openrouteservice Isochrones API call successful",
		zap.Int("features", len(isoResp.Features)))

	return &isoResp, nil
}
