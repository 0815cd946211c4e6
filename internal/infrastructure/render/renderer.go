package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"time"

	"github.com/isochrone-map/internal/domain"
	"github.com/isochrone-map/internal/domain/repository"
	"github.com/isochrone-map/internal/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	Title       = "Isochrone Map"
	XLabel      = "Longitude"
	YLabel      = "Latitude"
	Attribution = "© OpenStreetMap contributors"
)

var ErrNothingToRender = errors.New("polygon collection is empty")

// Options - параметры холста и подложки
type Options struct {
	WidthInches  float64
	HeightInches float64
	DPI          float64
	MaxTiles     int
	MaxZoom      int
	Concurrency  int
}

// DefaultOptions - холст 10×10 дюймов при 100 DPI
func DefaultOptions() Options {
	return Options{
		WidthInches:  10,
		HeightInches: 10,
		DPI:          100,
		MaxTiles:     16,
		MaxZoom:      19,
		Concurrency:  4,
	}
}

func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.WidthInches <= 0 {
		o.WidthInches = d.WidthInches
	}
	if o.HeightInches <= 0 {
		o.HeightInches = d.HeightInches
	}
	if o.DPI <= 0 {
		o.DPI = d.DPI
	}
	if o.MaxTiles <= 0 {
		o.MaxTiles = d.MaxTiles
	}
	if o.MaxZoom < 0 || o.MaxZoom > d.MaxZoom {
		o.MaxZoom = d.MaxZoom
	}
	if o.Concurrency <= 0 {
		o.Concurrency = d.Concurrency
	}
	return o
}

var figureMargins = margins{left: 100, right: 40, top: 70, bottom: 90}

type Renderer struct {
	tiles  repository.TileRepository
	opts   Options
	font   *opentype.Font
	logger *zap.Logger
}

func NewRenderer(tiles repository.TileRepository, opts Options, logger *zap.Logger) (*Renderer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return &Renderer{
		tiles:  tiles,
		opts:   opts.normalize(),
		font:   f,
		logger: logger,
	}, nil
}

// Render рисует подложку, полигоны в порядке коллекции и маркер исходной точки
func (r *Renderer) Render(ctx context.Context, polygons *domain.PolygonCollection, origin domain.OriginPoint) (*domain.Figure, error) {
	if polygons == nil || polygons.Len() == 0 {
		return nil, ErrNothingToRender
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	width := int(r.opts.WidthInches * r.opts.DPI)
	height := int(r.opts.HeightInches * r.opts.DPI)
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	bound := polygons.Bound().Extend(origin.Point)
	l := newLayout(newExtent(bound), canvas.Bounds(), figureMargins)

	tr := chooseZoom(l.extent, l.axes.Dx(), r.opts.MaxTiles, r.opts.MaxZoom)
	mosaic, err := r.fetchMosaic(ctx, tr)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	warpBasemap(canvas, l, mosaic, tr)

	n := polygons.Len()
	for i, poly := range polygons.Polygons {
		c := Viridis(tierFraction(i, n))
		fillPolygon(canvas, l, poly, withAlpha(c, fillAlpha))
		strokePolygon(canvas, l, poly, outlineWidth, withAlpha(black, outlineAlpha))
	}

	ox, oy := l.toPixel(origin.Point)
	drawMarker(canvas, ox, oy, markerRadius, markerColor)

	if err := r.decorate(canvas, l); err != nil {
		return nil, err
	}
	metrics.ObserveStage("draw", start)

	r.logger.Debug("Map rendered",
		zap.Int("polygons", n),
		zap.Int("zoom", tr.z),
		zap.Int("width", width),
		zap.Int("height", height),
	)

	return &domain.Figure{Image: canvas, DPI: r.opts.DPI}, nil
}

// decorate добавляет рамку, деления, подписи осей, заголовок и атрибуцию
func (r *Renderer) decorate(canvas *image.RGBA, l layout) error {
	fs, err := newFaces(r.font, r.opts.DPI)
	if err != nil {
		return fmt.Errorf("failed to create font faces: %w", err)
	}
	defer fs.Close()

	axes := l.axes
	drawFrame(canvas, axes)

	tickAscent := fs.tick.Metrics().Ascent.Ceil()

	lonStep := niceStep(l.width(), targetTicks)
	for _, v := range ticks(l.minLon, l.maxLon, targetTicks) {
		x := int(l.lonToX(v))
		vline(canvas, x, axes.Max.Y, axes.Max.Y+tickLength, black)
		drawCentered(canvas, fs.tick, formatTick(v, lonStep), x, axes.Max.Y+tickLength+4+tickAscent, black)
	}

	latStep := niceStep(l.height(), targetTicks)
	for _, v := range ticks(l.minLat, l.maxLat, targetTicks) {
		y := int(l.latToY(v))
		hline(canvas, axes.Min.X-tickLength, axes.Min.X, y, black)
		label := formatTick(v, latStep)
		drawText(canvas, fs.tick, label, axes.Min.X-tickLength-4-textWidth(fs.tick, label), y+tickAscent/2, black)
	}

	cx := (axes.Min.X + axes.Max.X) / 2
	cy := (axes.Min.Y + axes.Max.Y) / 2

	drawCentered(canvas, fs.label, XLabel, cx, axes.Max.Y+tickLength+4+2*tickAscent+fs.label.Metrics().Ascent.Ceil()+8, black)
	drawVertical(canvas, fs.label, YLabel, axes.Min.X-tickLength-4-r.maxLatLabelWidth(fs, l)-8-fs.label.Metrics().Height.Ceil(), cy, black)
	drawCentered(canvas, fs.title, Title, cx, axes.Min.Y-12, black)

	// атрибуция в правом нижнем углу осей на полупрозрачной подложке
	aw := textWidth(fs.attribution, Attribution)
	ah := fs.attribution.Metrics().Height.Ceil()
	box := image.Rect(axes.Max.X-aw-8, axes.Max.Y-ah-4, axes.Max.X-1, axes.Max.Y-1)
	draw.Draw(canvas, box, image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 180}), image.Point{}, draw.Over)
	drawText(canvas, fs.attribution, Attribution, box.Min.X+4, axes.Max.Y-4-fs.attribution.Metrics().Descent.Ceil(), black)

	return nil
}

func (r *Renderer) maxLatLabelWidth(fs *faces, l layout) int {
	step := niceStep(l.height(), targetTicks)
	max := 0
	for _, v := range ticks(l.minLat, l.maxLat, targetTicks) {
		if w := textWidth(fs.tick, formatTick(v, step)); w > max {
			max = w
		}
	}
	return max
}

// EncodePNG кодирует фигуру в PNG для предпросмотра
func (r *Renderer) EncodePNG(fig *domain.Figure) ([]byte, error) {
	defer metrics.ObserveStage("encode_png", time.Now())
	return EncodePNG(fig)
}

// EncodePNG кодирует фигуру в PNG для предпросмотра и экспорта
func EncodePNG(fig *domain.Figure) ([]byte, error) {
	if fig == nil || fig.Image == nil {
		return nil, errors.New("figure is empty")
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, fig.Image); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
