package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/isochrone-map/internal/pkg/metrics"
	"go.uber.org/zap"
)

// fetchMosaic загружает все тайлы диапазона и склеивает их в одно изображение.
// Первая ошибка отменяет остальные загрузки.
func (r *Renderer) fetchMosaic(ctx context.Context, tr tileRange) (*image.RGBA, error) {
	defer metrics.ObserveStage("basemap_fetch", time.Now())

	mosaic := image.NewRGBA(image.Rect(0, 0, tr.width()*tileSize, tr.height()*tileSize))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	for ty := tr.minY; ty <= tr.maxY; ty++ {
		for tx := tr.minX; tx <= tr.maxX; tx++ {
			g.Go(func() error {
				tile, err := r.tiles.GetTile(gctx, tr.z, tx, ty)
				if err != nil {
					return fmt.Errorf("basemap tile %d/%d/%d: %w", tr.z, tx, ty, err)
				}

				ox := (tx - tr.minX) * tileSize
				oy := (ty - tr.minY) * tileSize
				dst := image.Rect(ox, oy, ox+tileSize, oy+tileSize)

				// каждая горутина пишет только в свой участок мозаики
				b := tile.Bounds()
				if b.Dx() == tileSize && b.Dy() == tileSize {
					draw.Draw(mosaic, dst, tile, b.Min, draw.Src)
				} else {
					xdraw.ApproxBiLinear.Scale(mosaic, dst, tile, b, xdraw.Src, nil)
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Debug("Basemap mosaic assembled",
		zap.Int("zoom", tr.z),
		zap.Int("tiles", tr.count()),
	)

	return mosaic, nil
}

// warpBasemap переносит мозаику из Web Mercator в оси EPSG:4326 (ближайший сосед).
// Преобразование разделимо: x зависит только от долготы, y только от широты.
func warpBasemap(canvas *image.RGBA, l layout, mosaic *image.RGBA, tr tileRange) {
	axes := l.axes.Intersect(canvas.Bounds())
	if axes.Empty() {
		return
	}

	cols := make([]int, axes.Dx())
	for i := range cols {
		lon := l.xToLon(float64(axes.Min.X+i) + 0.5)
		cols[i] = int((lonToTileX(lon, tr.z) - float64(tr.minX)) * tileSize)
	}

	mb := mosaic.Bounds()
	for py := axes.Min.Y; py < axes.Max.Y; py++ {
		lat := l.yToLat(float64(py) + 0.5)
		my := int((latToTileY(lat, tr.z) - float64(tr.minY)) * tileSize)
		if my < mb.Min.Y || my >= mb.Max.Y {
			continue
		}
		for i, mx := range cols {
			if mx < mb.Min.X || mx >= mb.Max.X {
				continue
			}
			canvas.SetRGBA(axes.Min.X+i, py, mosaic.RGBAAt(mx, my))
		}
	}
}
