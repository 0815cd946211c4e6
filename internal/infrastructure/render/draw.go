package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/image/vector"
)

const (
	fillAlpha    = 0.5
	outlineAlpha = 0.5
	outlineWidth = 1.5
	markerRadius = 7.0
	markerSides  = 48
)

var (
	markerColor = color.RGBA{R: 255, A: 255}
	black       = color.RGBA{A: 255}
)

func newRasterizer(canvas *image.RGBA) *vector.Rasterizer {
	b := canvas.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return z
}

// fillPolygon заливает полигон с учётом дыр: внутренние кольца идут в обратном направлении
func fillPolygon(canvas *image.RGBA, l layout, poly orb.Polygon, c color.Color) {
	z := newRasterizer(canvas)
	for _, ring := range poly {
		if len(ring) < 3 {
			continue
		}
		for i, p := range ring {
			x, y := l.toPixel(p)
			if i == 0 {
				z.MoveTo(float32(x), float32(y))
				continue
			}
			z.LineTo(float32(x), float32(y))
		}
		z.ClosePath()
	}
	z.Draw(canvas, canvas.Bounds(), image.NewUniform(c), image.Point{})
}

// strokePolygon обводит все кольца полигона линией заданной ширины.
// Каждый отрезок - отдельный четырёхугольник с одинаковым направлением обхода,
// поэтому перекрытия на стыках не вычитаются.
func strokePolygon(canvas *image.RGBA, l layout, poly orb.Polygon, width float64, c color.Color) {
	z := newRasterizer(canvas)
	half := width / 2

	for _, ring := range poly {
		n := len(ring)
		for i := 0; i < n; i++ {
			ax, ay := l.toPixel(ring[i])
			bx, by := l.toPixel(ring[(i+1)%n])

			dx, dy := bx-ax, by-ay
			length := math.Hypot(dx, dy)
			if length == 0 {
				continue
			}
			nx, ny := -dy/length*half, dx/length*half

			z.MoveTo(float32(ax+nx), float32(ay+ny))
			z.LineTo(float32(bx+nx), float32(by+ny))
			z.LineTo(float32(bx-nx), float32(by-ny))
			z.LineTo(float32(ax-nx), float32(ay-ny))
			z.ClosePath()
		}
	}
	z.Draw(canvas, canvas.Bounds(), image.NewUniform(c), image.Point{})
}

// drawMarker рисует закрашенный круг с центром в (cx, cy)
func drawMarker(canvas *image.RGBA, cx, cy, radius float64, c color.Color) {
	z := newRasterizer(canvas)
	for i := 0; i <= markerSides; i++ {
		a := 2 * math.Pi * float64(i) / markerSides
		x := float32(cx + radius*math.Cos(a))
		y := float32(cy + radius*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
			continue
		}
		z.LineTo(x, y)
	}
	z.ClosePath()
	z.Draw(canvas, canvas.Bounds(), image.NewUniform(c), image.Point{})
}

// hline и vline рисуют однопиксельные линии рамки и делений
func hline(canvas *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		canvas.SetRGBA(x, y, c)
	}
}

func vline(canvas *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		canvas.SetRGBA(x, y, c)
	}
}

func drawFrame(canvas *image.RGBA, r image.Rectangle) {
	hline(canvas, r.Min.X, r.Max.X, r.Min.Y, black)
	hline(canvas, r.Min.X, r.Max.X, r.Max.Y, black)
	vline(canvas, r.Min.X, r.Min.Y, r.Max.Y, black)
	vline(canvas, r.Max.X, r.Min.Y, r.Max.Y, black)
}
