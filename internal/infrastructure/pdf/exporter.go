package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/isochrone-map/internal/domain"
	"github.com/isochrone-map/internal/infrastructure/render"
	"github.com/isochrone-map/internal/pkg/metrics"
	"go.uber.org/zap"
)

const (
	pointsPerInch = 72
	imageName     = "figure"
	producer      = "isochrone-map"
)

var ErrEmptyFigure = errors.New("figure is empty")

type Exporter struct {
	logger *zap.Logger
}

func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export сохраняет фигуру в одностраничный PDF размером с фигуру.
// Изображение занимает всю страницу, поля нулевые.
func (e *Exporter) Export(fig *domain.Figure) (*domain.Document, error) {
	if fig == nil || fig.Image == nil {
		return nil, ErrEmptyFigure
	}
	defer metrics.ObserveStage("export", time.Now())

	pngData, err := render.EncodePNG(fig)
	if err != nil {
		return nil, err
	}

	wIn, hIn := fig.SizeInches()
	w, h := wIn*pointsPerInch, hIn*pointsPerInch

	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: w, Ht: h},
	})
	doc.SetProducer(producer, false)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(pngData))
	doc.ImageOptions(imageName, 0, 0, w, h, false, opt, 0, "")

	if doc.Err() {
		return nil, fmt.Errorf("failed to build pdf: %w", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	e.logger.Debug("Document exported",
		zap.Float64("width_pt", w),
		zap.Float64("height_pt", h),
		zap.Int("size", buf.Len()),
	)

	return &domain.Document{
		Filename:    domain.DocumentFilename,
		ContentType: domain.DocumentContentType,
		Data:        buf.Bytes(),
	}, nil
}
