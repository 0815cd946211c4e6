package usecase

import (
	"context"

	"github.com/isochrone-map/internal/domain"
)

// MapRenderer рисует полигоны и исходную точку поверх подложки
type MapRenderer interface {
	Render(ctx context.Context, polygons *domain.PolygonCollection, origin domain.OriginPoint) (*domain.Figure, error)
	EncodePNG(fig *domain.Figure) ([]byte, error)
}

// DocumentExporter сохраняет отрисованную карту в документ для скачивания
type DocumentExporter interface {
	Export(fig *domain.Figure) (*domain.Document, error)
}
