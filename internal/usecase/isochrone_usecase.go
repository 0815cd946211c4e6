package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/isochrone-map/internal/domain"
	"github.com/isochrone-map/internal/domain/repository"
	"github.com/isochrone-map/internal/pkg/errors"
	"github.com/isochrone-map/internal/pkg/metrics"
	"github.com/isochrone-map/internal/pkg/validator"
	"github.com/isochrone-map/internal/usecase/dto"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// IsochroneUseCase - конвейер построения карты изохрон:
// разбор ввода → запрос к провайдеру → полигоны → отрисовка → экспорт.
// Любая ошибка прерывает конвейер, частичных результатов нет.
type IsochroneUseCase struct {
	routingRepo repository.IsochroneRepository
	renderer    MapRenderer
	exporter    DocumentExporter
	logger      *zap.Logger
}

// NewIsochroneUseCase создает новый IsochroneUseCase
func NewIsochroneUseCase(
	routingRepo repository.IsochroneRepository,
	renderer MapRenderer,
	exporter DocumentExporter,
	logger *zap.Logger,
) *IsochroneUseCase {
	return &IsochroneUseCase{
		routingRepo: routingRepo,
		renderer:    renderer,
		exporter:    exporter,
		logger:      logger,
	}
}

// Generate выполняет полный цикл и возвращает карту с превью и PDF
func (uc *IsochroneUseCase) Generate(ctx context.Context, req dto.IsochroneRequest) (*domain.IsochroneMap, error) {
	origin, polygons, err := uc.buildPolygons(ctx, req)
	if err != nil {
		return nil, err
	}
	originPoint := domain.NewOriginPoint(origin)

	start := time.Now()
	fig, err := uc.renderer.Render(ctx, polygons, originPoint)
	if err != nil {
		return nil, uc.fail(errors.ErrRenderFailed.Wrap(err))
	}
	metrics.ObserveStage("render", start)

	preview, err := uc.renderer.EncodePNG(fig)
	if err != nil {
		return nil, uc.fail(errors.ErrRenderFailed.Wrap(err))
	}

	doc, err := uc.exporter.Export(fig)
	if err != nil {
		return nil, uc.fail(errors.ErrExportFailed.Wrap(err))
	}

	uc.logger.Info("Isochrone map generated",
		zap.Float64("lat", origin.Lat),
		zap.Float64("lon", origin.Lon),
		zap.Ints("thresholds", polygons.Thresholds),
		zap.Int("pdf_size", len(doc.Data)),
	)

	return &domain.IsochroneMap{
		Origin:    originPoint,
		Polygons:  polygons,
		Summaries: BuildSummaries(polygons, originPoint),
		Preview:   preview,
		Document:  doc,
	}, nil
}

// GenerateGeoJSON выполняет конвейер до построения полигонов, без отрисовки
func (uc *IsochroneUseCase) GenerateGeoJSON(ctx context.Context, req dto.IsochroneRequest) (*dto.IsochroneGeoJSONResponse, error) {
	origin, polygons, err := uc.buildPolygons(ctx, req)
	if err != nil {
		return nil, err
	}
	originPoint := domain.NewOriginPoint(origin)

	fc := geojson.NewFeatureCollection()
	for i, poly := range polygons.Polygons {
		f := geojson.NewFeature(poly)
		f.Properties["minutes"] = polygons.Thresholds[i]
		f.Properties["seconds"] = polygons.Thresholds[i] * 60
		f.Properties["tier"] = i
		fc.Append(f)
	}

	of := geojson.NewFeature(originPoint.Point)
	of.Properties["role"] = "origin"
	fc.Append(of)

	return &dto.IsochroneGeoJSONResponse{
		Origin:     origin,
		CRS:        polygons.CRS,
		Isochrones: fc,
		Summaries:  BuildSummaries(polygons, originPoint),
	}, nil
}

// buildPolygons - общая часть конвейера: валидация, запрос к провайдеру, сборка полигонов
func (uc *IsochroneUseCase) buildPolygons(
	ctx context.Context,
	req dto.IsochroneRequest,
) (domain.Coordinate, *domain.PolygonCollection, error) {
	// ошибка разбора возвращается до любого сетевого запроса
	if err := validator.Validate(&req); err != nil {
		return domain.Coordinate{}, nil, uc.fail(err)
	}
	origin := req.Origin()
	thresholds, err := domain.ParseThresholds(req.Minutes)
	if err != nil {
		return origin, nil, uc.fail(errors.ErrInvalidThresholds.Wrap(err))
	}

	start := time.Now()
	resp, err := uc.routingRepo.GetIsochrones(ctx, origin, thresholds)
	if err != nil {
		uc.logger.Error("Routing provider request failed",
			zap.Float64("lat", origin.Lat),
			zap.Float64("lon", origin.Lon),
			zap.Error(err),
		)
		return origin, nil, uc.fail(classifyRoutingError(err))
	}
	metrics.ObserveStage("fetch", start)

	start = time.Now()
	polygons, err := BuildPolygons(resp, thresholds)
	if err != nil {
		return origin, nil, uc.fail(errors.ErrInvalidGeometry.Wrap(err))
	}
	metrics.ObserveStage("build", start)

	if polygons.Len() != len(thresholds) {
		uc.logger.Warn("Feature count differs from threshold count",
			zap.Int("features", polygons.Len()),
			zap.Int("thresholds", len(thresholds)),
		)
	}

	return origin, polygons, nil
}

// classifyRoutingError отделяет ответ провайдера с ошибочным статусом от сетевых сбоев
func classifyRoutingError(err error) error {
	var providerErr *domain.ProviderError
	if stderrors.As(err, &providerErr) {
		return errors.NewProviderError(providerErr.StatusCode, providerErr.Body, err)
	}
	return errors.ErrRoutingUnavailable.Wrap(err)
}

func (uc *IsochroneUseCase) fail(err error) error {
	metrics.PipelineFailures.WithLabelValues(string(errors.KindOf(err))).Inc()
	return err
}
