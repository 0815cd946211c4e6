package repository

import (
	"context"

	"github.com/isochrone-map/internal/domain"
)

// IsochroneRepository определяет методы для работы с провайдером изохрон
type IsochroneRepository interface {
	// GetIsochrones запрашивает полигоны доступности для точки и набора порогов.
	// Полигоны в ответе ожидаются в порядке порогов.
	GetIsochrones(
		ctx context.Context,
		origin domain.Coordinate,
		thresholds domain.ThresholdSet,
	) (*domain.IsochroneResponse, error)
}
