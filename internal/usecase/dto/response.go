package dto

import (
	"github.com/isochrone-map/internal/domain"
	"github.com/paulmach/orb/geojson"
)

// IsochroneGeoJSONResponse - полигоны изохрон и исходная точка в виде GeoJSON
type IsochroneGeoJSONResponse struct {
	Origin     domain.Coordinate          `json:"origin"`
	CRS        string                     `json:"crs"`
	Isochrones *geojson.FeatureCollection `json:"isochrones" swaggertype:"object"`
	Summaries  []domain.PolygonSummary    `json:"summaries"`
}

// HealthResponse - ответ health-check
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}
