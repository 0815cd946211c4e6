package render

import (
	"image"
	"math"

	"github.com/paulmach/orb"
)

// extentPadding - доля экстента, добавляемая с каждой стороны
const extentPadding = 0.05

// minSpanDeg - минимальный размер экстента для вырожденных геометрий
const minSpanDeg = 0.01

type extent struct {
	minLon, maxLon float64
	minLat, maxLat float64
}

func newExtent(b orb.Bound) extent {
	e := extent{minLon: b.Min.Lon(), maxLon: b.Max.Lon(), minLat: b.Min.Lat(), maxLat: b.Max.Lat()}

	if w := e.maxLon - e.minLon; w < minSpanDeg {
		c := (e.minLon + e.maxLon) / 2
		e.minLon, e.maxLon = c-minSpanDeg/2, c+minSpanDeg/2
	}
	if h := e.maxLat - e.minLat; h < minSpanDeg {
		c := (e.minLat + e.maxLat) / 2
		e.minLat, e.maxLat = c-minSpanDeg/2, c+minSpanDeg/2
	}

	padLon := (e.maxLon - e.minLon) * extentPadding
	padLat := (e.maxLat - e.minLat) * extentPadding
	e.minLon -= padLon
	e.maxLon += padLon
	e.minLat = math.Max(-90, e.minLat-padLat)
	e.maxLat = math.Min(90, e.maxLat+padLat)

	return e
}

func (e extent) width() float64  { return e.maxLon - e.minLon }
func (e extent) height() float64 { return e.maxLat - e.minLat }

// layout связывает географический экстент с прямоугольником осей на холсте
type layout struct {
	extent
	axes   image.Rectangle
	scale  float64 // пикселей на градус долготы
	aspect float64 // растяжение по широте
	x0, y0 float64
}

type margins struct {
	left, right, top, bottom int
}

func newLayout(e extent, canvas image.Rectangle, m margins) layout {
	availW := float64(canvas.Dx() - m.left - m.right)
	availH := float64(canvas.Dy() - m.top - m.bottom)

	meanLat := (e.minLat + e.maxLat) / 2
	aspect := 1 / math.Cos(meanLat*math.Pi/180)

	scale := math.Min(availW/e.width(), availH/(e.height()*aspect))
	w := e.width() * scale
	h := e.height() * scale * aspect

	x0 := float64(m.left) + (availW-w)/2
	y0 := float64(m.top) + (availH-h)/2

	return layout{
		extent: e,
		axes:   image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x0+w)), int(math.Round(y0+h))),
		scale:  scale,
		aspect: aspect,
		x0:     x0,
		y0:     y0,
	}
}

// toPixel переводит точку (lon, lat) в координаты холста
func (l layout) toPixel(p orb.Point) (float64, float64) {
	return l.lonToX(p.Lon()), l.latToY(p.Lat())
}

func (l layout) lonToX(lon float64) float64 {
	return l.x0 + (lon-l.minLon)*l.scale
}

func (l layout) latToY(lat float64) float64 {
	return l.y0 + (l.maxLat-lat)*l.scale*l.aspect
}

func (l layout) xToLon(x float64) float64 {
	return l.minLon + (x-l.x0)/l.scale
}

func (l layout) yToLat(y float64) float64 {
	return l.maxLat - (y-l.y0)/(l.scale*l.aspect)
}
