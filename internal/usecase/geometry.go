package usecase

import (
	stderrors "errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"
	"github.com/isochrone-map/internal/domain"
	"github.com/isochrone-map/internal/pkg/utils"
	"github.com/paulmach/orb"
)

var ErrMalformedGeometry = stderrors.New("malformed isochrone geometry")

// BuildPolygons превращает ответ провайдера в коллекцию полигонов.
// Внешнее кольцо каждого полигона - coordinates[0] как есть, без проверки замкнутости
// и самопересечений. Порядок полигонов совпадает с порядком features.
func BuildPolygons(resp *domain.IsochroneResponse, thresholds domain.ThresholdSet) (*domain.PolygonCollection, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedGeometry)
	}
	if len(resp.Features) == 0 {
		return nil, fmt.Errorf("%w: response has no features", ErrMalformedGeometry)
	}

	collection := &domain.PolygonCollection{
		CRS:        domain.CRSWGS84,
		Polygons:   make([]orb.Polygon, 0, len(resp.Features)),
		Thresholds: make([]int, 0, len(resp.Features)),
	}

	for i, feature := range resp.Features {
		ring, err := outerRing(feature)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %d: %v", ErrMalformedGeometry, i, err)
		}

		minutes := int(math.Round(feature.Properties.Value / 60))
		if i < len(thresholds) {
			minutes = thresholds[i]
		}

		collection.Polygons = append(collection.Polygons, orb.Polygon{ring})
		collection.Thresholds = append(collection.Thresholds, minutes)
	}

	return collection, nil
}

func outerRing(feature domain.IsochroneFeature) (orb.Ring, error) {
	if feature.Geometry == nil || len(feature.Geometry.Coordinates) == 0 {
		return nil, stderrors.New("geometry is missing")
	}

	var rings [][][]float64
	if err := json.Unmarshal(feature.Geometry.Coordinates, &rings); err != nil {
		return nil, fmt.Errorf("coordinates are not a polygon: %w", err)
	}
	if len(rings) == 0 {
		return nil, stderrors.New("polygon has no rings")
	}

	positions := rings[0]
	if len(positions) < 3 {
		return nil, fmt.Errorf("outer ring has %d positions, need at least 3", len(positions))
	}

	ring := make(orb.Ring, 0, len(positions))
	for j, pos := range positions {
		// [lon, lat] или [lon, lat, elevation]
		if len(pos) != 2 && len(pos) != 3 {
			return nil, fmt.Errorf("position %d has %d values", j, len(pos))
		}
		ring = append(ring, orb.Point{pos[0], pos[1]})
	}

	return ring, nil
}

// BuildSummaries считает краткую сводку по каждому полигону коллекции
func BuildSummaries(collection *domain.PolygonCollection, origin domain.OriginPoint) []domain.PolygonSummary {
	summaries := make([]domain.PolygonSummary, 0, collection.Len())
	for i, poly := range collection.Polygons {
		var minutes int
		if i < len(collection.Thresholds) {
			minutes = collection.Thresholds[i]
		}

		var outer orb.Ring
		if len(poly) > 0 {
			outer = poly[0]
		}

		summaries = append(summaries, domain.PolygonSummary{
			Minutes:    minutes,
			Seconds:    minutes * 60,
			Vertices:   len(outer),
			MaxReachKm: math.Round(utils.MaxReachKm(origin.Point, outer)*1000) / 1000,
		})
	}
	return summaries
}
