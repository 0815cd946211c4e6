package domain

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// CRSWGS84 - географическая система координат, в которой интерпретируются lat/lon
const CRSWGS84 = "EPSG:4326"

const (
	DocumentFilename    = "isochrone_map.pdf"
	DocumentContentType = "application/pdf"
)

var (
	ErrEmptyThresholds   = errors.New("threshold list is empty")
	ErrInvalidThreshold  = errors.New("threshold is not an integer")
	ErrNegativeThreshold = errors.New("threshold must be positive")
	ErrThresholdTooLarge = fmt.Errorf("%w: value is too large", ErrInvalidThreshold)
)

// Coordinate - точка в градусах WGS84, хранится в порядке (lat, lon)
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LonLat возвращает пару в порядке [lon, lat], как её ожидает провайдер маршрутизации
func (c Coordinate) LonLat() [2]float64 {
	return [2]float64{c.Lon, c.Lat}
}

// Point возвращает orb.Point (x = lon, y = lat)
func (c Coordinate) Point() orb.Point {
	return orb.Point(c.LonLat())
}

// ThresholdSet - упорядоченный список порогов времени в минутах
type ThresholdSet []int

// MaxThresholdMinutes - верхняя граница порога: значение в секундах помещается в int32
const MaxThresholdMinutes = math.MaxInt32 / 60

// ParseThresholds разбирает строку вида "5,10,15,20".
// Пробелы вокруг элементов допускаются, пустые элементы - нет.
func ParseThresholds(input string) (ThresholdSet, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyThresholds
	}

	parts := strings.Split(input, ",")
	result := make(ThresholdSet, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		minutes, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidThreshold, trimmed)
		}
		if minutes <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrNegativeThreshold, minutes)
		}
		if minutes > MaxThresholdMinutes {
			return nil, fmt.Errorf("%w: %d > %d", ErrThresholdTooLarge, minutes, MaxThresholdMinutes)
		}
		result = append(result, minutes)
	}

	return result, nil
}

// Seconds переводит минуты в секунды с сохранением порядка
func (t ThresholdSet) Seconds() []int {
	seconds := make([]int, len(t))
	for i, m := range t {
		seconds[i] = m * 60
	}
	return seconds
}

// PolygonCollection - по одному полигону на каждый порог, порядок совпадает с ответом провайдера
type PolygonCollection struct {
	CRS        string
	Polygons   []orb.Polygon
	Thresholds []int
}

func (c *PolygonCollection) Len() int {
	return len(c.Polygons)
}

// Bound возвращает ограничивающий прямоугольник всех полигонов
func (c *PolygonCollection) Bound() orb.Bound {
	return orb.MultiPolygon(c.Polygons).Bound()
}

// OriginPoint - маркер исходной точки на карте
type OriginPoint struct {
	CRS   string
	Point orb.Point
}

func NewOriginPoint(c Coordinate) OriginPoint {
	return OriginPoint{CRS: CRSWGS84, Point: c.Point()}
}

// Figure - отрисованная карта, живёт только в рамках одного запроса
type Figure struct {
	Image *image.RGBA
	DPI   float64
}

// SizeInches возвращает физический размер фигуры
func (f *Figure) SizeInches() (float64, float64) {
	b := f.Image.Bounds()
	return float64(b.Dx()) / f.DPI, float64(b.Dy()) / f.DPI
}

// Document - документ для скачивания
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PolygonSummary - краткая информация о полигоне для JSON API
type PolygonSummary struct {
	Minutes    int     `json:"minutes"`
	Seconds    int     `json:"seconds"`
	Vertices   int     `json:"vertices"`
	MaxReachKm float64 `json:"max_reach_km"`
}

// IsochroneMap - результат полного цикла генерации карты
type IsochroneMap struct {
	Origin    OriginPoint
	Polygons  *PolygonCollection
	Summaries []PolygonSummary
	Preview   []byte
	Document  *Document
}
