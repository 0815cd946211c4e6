package render

import (
	"image"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestTileMath(t *testing.T) {
	assert.InDelta(t, 0.0, lonToTileX(-180, 3), 1e-9)
	assert.InDelta(t, 4.0, lonToTileX(0, 3), 1e-9)
	assert.InDelta(t, 1.0, latToTileY(0, 1), 1e-9)
	assert.InDelta(t, 0.0, latToTileY(maxMercatorLat, 0), 1e-6)

	// за пределами проекции широта обрезается
	assert.InDelta(t, latToTileY(maxMercatorLat, 4), latToTileY(89.9, 4), 1e-9)
}

func TestChooseZoom(t *testing.T) {
	e := newExtent(orb.Bound{Min: orb.Point{55.12, 24.96}, Max: orb.Point{55.21, 25.05}})

	for _, maxTiles := range []int{1, 4, 16, 64} {
		tr := chooseZoom(e, 800, maxTiles, 19)
		assert.LessOrEqual(t, tr.count(), maxTiles)
		assert.GreaterOrEqual(t, tr.z, 0)
		assert.LessOrEqual(t, tr.z, 19)
	}

	// больше тайлов - не меньший уровень детализации
	assert.GreaterOrEqual(t, chooseZoom(e, 800, 64, 19).z, chooseZoom(e, 800, 4, 19).z)

	// ограничение сверху
	assert.Equal(t, 3, chooseZoom(e, 800, 64, 3).z)
}

func TestTilesFor_CoversExtent(t *testing.T) {
	e := newExtent(orb.Bound{Min: orb.Point{55.12, 24.96}, Max: orb.Point{55.21, 25.05}})
	tr := tilesFor(e, 12)

	assert.LessOrEqual(t, float64(tr.minX), lonToTileX(e.minLon, 12))
	assert.Greater(t, float64(tr.maxX+1), lonToTileX(e.maxLon, 12))
	assert.LessOrEqual(t, float64(tr.minY), latToTileY(e.maxLat, 12))
	assert.Greater(t, float64(tr.maxY+1), latToTileY(e.minLat, 12))
}

func TestNewExtent(t *testing.T) {
	e := newExtent(orb.Bound{Min: orb.Point{10, 20}, Max: orb.Point{12, 21}})
	assert.InDelta(t, 9.9, e.minLon, 1e-9)
	assert.InDelta(t, 12.1, e.maxLon, 1e-9)
	assert.InDelta(t, 19.95, e.minLat, 1e-9)
	assert.InDelta(t, 21.05, e.maxLat, 1e-9)

	// вырожденный экстент (одна точка) расширяется
	p := newExtent(orb.Bound{Min: orb.Point{10, 20}, Max: orb.Point{10, 20}})
	assert.Greater(t, p.width(), 0.0)
	assert.Greater(t, p.height(), 0.0)
}

func TestLayout_RoundTrip(t *testing.T) {
	e := newExtent(orb.Bound{Min: orb.Point{55.12, 24.96}, Max: orb.Point{55.21, 25.05}})
	l := newLayout(e, image.Rect(0, 0, 1000, 1000), figureMargins)

	assert.True(t, l.axes.In(image.Rect(0, 0, 1000, 1000)))
	assert.Greater(t, l.aspect, 1.0)

	x, y := l.toPixel(orb.Point{55.17, 25.0})
	assert.InDelta(t, 55.17, l.xToLon(x), 1e-9)
	assert.InDelta(t, 25.0, l.yToLat(y), 1e-9)

	// север сверху
	_, yNorth := l.toPixel(orb.Point{55.17, 25.04})
	assert.Less(t, yNorth, y)
}

func TestViridis(t *testing.T) {
	assert.Equal(t, viridisAnchors[0], Viridis(0))
	assert.Equal(t, viridisAnchors[len(viridisAnchors)-1], Viridis(1))
	assert.Equal(t, viridisAnchors[4], Viridis(0.5))
	assert.Equal(t, viridisAnchors[0], Viridis(-1))

	assert.Equal(t, 0.0, tierFraction(0, 1))
	assert.Equal(t, 0.0, tierFraction(0, 4))
	assert.Equal(t, 1.0, tierFraction(3, 4))
}

func TestTicks(t *testing.T) {
	assert.InDelta(t, 0.02, niceStep(0.13, 5), 1e-12)
	assert.InDelta(t, 1.0, niceStep(5, 5), 1e-12)
	assert.InDelta(t, 50.0, niceStep(300, 5), 1e-12)

	values := ticks(55.10, 55.23, 5)
	assert.NotEmpty(t, values)
	for i, v := range values {
		assert.GreaterOrEqual(t, v, 55.10-1e-9)
		assert.LessOrEqual(t, v, 55.23+1e-9)
		if i > 0 {
			assert.InDelta(t, 0.02, v-values[i-1], 1e-9)
		}
	}

	assert.Equal(t, "55.12", formatTick(55.12, 0.02))
	assert.Equal(t, "10", formatTick(10, 5))
	assert.Equal(t, "0.0", formatTick(-1e-15, 0.5))
}
