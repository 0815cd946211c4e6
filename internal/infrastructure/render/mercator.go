package render

import (
	"math"
)

const (
	tileSize = 256

	// maxMercatorLat - широта, на которой обрезается проекция Web Mercator
	maxMercatorLat = 85.0511287798066
)

func lonToTileX(lon float64, z int) float64 {
	return (lon + 180) / 360 * float64(int(1)<<z)
}

func latToTileY(lat float64, z int) float64 {
	lat = math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
	phi := lat * math.Pi / 180
	return (1 - math.Log(math.Tan(phi)+1/math.Cos(phi))/math.Pi) / 2 * float64(int(1)<<z)
}

// tileRange - прямоугольник тайлов, покрывающий экстент на уровне z (границы включительно)
type tileRange struct {
	z          int
	minX, maxX int
	minY, maxY int
}

func (r tileRange) width() int  { return r.maxX - r.minX + 1 }
func (r tileRange) height() int { return r.maxY - r.minY + 1 }
func (r tileRange) count() int  { return r.width() * r.height() }

func tilesFor(e extent, z int) tileRange {
	n := int(1) << z
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > n-1 {
			return n - 1
		}
		return v
	}

	return tileRange{
		z:    z,
		minX: clamp(int(math.Floor(lonToTileX(e.minLon, z)))),
		maxX: clamp(int(math.Floor(lonToTileX(e.maxLon, z)))),
		// ось Y тайлов направлена на юг
		minY: clamp(int(math.Floor(latToTileY(e.maxLat, z)))),
		maxY: clamp(int(math.Floor(latToTileY(e.minLat, z)))),
	}
}

// chooseZoom выбирает наибольший уровень, на котором экстент покрывается не более чем maxTiles тайлами.
// Перебор останавливается, как только мозаика по ширине не меньше области осей.
func chooseZoom(e extent, axesWidth, maxTiles, maxZoom int) tileRange {
	best := tilesFor(e, 0)
	for z := 1; z <= maxZoom; z++ {
		if best.spanPixels(e) >= float64(axesWidth) {
			break
		}
		r := tilesFor(e, z)
		if r.count() > maxTiles {
			break
		}
		best = r
	}
	return best
}

// spanPixels - ширина экстента в пикселях мозаики
func (r tileRange) spanPixels(e extent) float64 {
	return (lonToTileX(e.maxLon, r.z) - lonToTileX(e.minLon, r.z)) * tileSize
}
