package domain

import (
	"fmt"

	"github.com/goccy/go-json"
)

// IsochroneResponse - ответ openrouteservice (GeoJSON FeatureCollection)
type IsochroneResponse struct {
	Type     string             `json:"type"`
	BBox     []float64          `json:"bbox,omitempty"`
	Features []IsochroneFeature `json:"features"`
	Metadata *IsochroneMetadata `json:"metadata,omitempty"`
}

// IsochroneFeature - один полигон доступности
type IsochroneFeature struct {
	Type       string              `json:"type"`
	Properties IsochroneProperties `json:"properties"`
	Geometry   *IsochroneGeometry  `json:"geometry,omitempty"`
}

type IsochroneProperties struct {
	GroupIndex int       `json:"group_index"`
	Value      float64   `json:"value"`
	Center     []float64 `json:"center,omitempty"`
}

// IsochroneGeometry хранит координаты как есть; разбор выполняется при построении полигонов
type IsochroneGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type IsochroneMetadata struct {
	Attribution string          `json:"attribution,omitempty"`
	Service     string          `json:"service,omitempty"`
	Timestamp   int64           `json:"timestamp,omitempty"`
	Query       *IsochroneQuery `json:"query,omitempty"`
	Engine      *EngineInfo     `json:"engine,omitempty"`
}

type IsochroneQuery struct {
	Profile   string      `json:"profile,omitempty"`
	Locations [][]float64 `json:"locations,omitempty"`
	Range     []float64   `json:"range,omitempty"`
}

type EngineInfo struct {
	Version   string `json:"version,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GraphDate string `json:"graph_date,omitempty"`
}

// ProviderError - провайдер ответил статусом вне 2xx
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("routing provider error: status %d, body: %s", e.StatusCode, e.Body)
}
