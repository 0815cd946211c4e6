package usecase_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isochrone-map/internal/config"
	"github.com/isochrone-map/internal/infrastructure/openrouteservice"
	"github.com/isochrone-map/internal/infrastructure/pdf"
	"github.com/isochrone-map/internal/infrastructure/render"
	apperrors "github.com/isochrone-map/internal/pkg/errors"
	"github.com/isochrone-map/internal/usecase"
)

type grayTiles struct{}

func (grayTiles) GetTile(ctx context.Context, z, x, y int) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 230, G: 230, B: 220, A: 255}), image.Point{}, draw.Src)
	return img, nil
}

// orsFeatures строит ответ с квадратом вокруг исходной точки на каждый порог
func orsFeatures(ranges []int) string {
	features := make([]string, 0, len(ranges))
	for i, r := range ranges {
		d := 0.01 * float64(i+1)
		lon, lat := testOrigin.Lon, testOrigin.Lat
		features = append(features, fmt.Sprintf(
			`{"type":"Feature","properties":{"group_index":0,"value":%d},"geometry":{"type":"Polygon","coordinates":[[[%f,%f],[%f,%f],[%f,%f],[%f,%f],[%f,%f]]]}}`,
			r, lon-d, lat-d, lon+d, lat-d, lon+d, lat+d, lon-d, lat+d, lon-d, lat-d,
		))
	}
	return `{"type":"FeatureCollection","features":[` + strings.Join(features, ",") + `]}`
}

func newPipeline(t *testing.T, orsURL string) *usecase.IsochroneUseCase {
	t.Helper()
	logger := zap.NewNop()

	routing := openrouteservice.NewClient(&config.RoutingConfig{
		APIKey:         "test_key",
		BaseURL:        orsURL,
		Profile:        "driving-car",
		RequestTimeout: 5,
	}, logger)

	renderer, err := render.NewRenderer(grayTiles{}, render.DefaultOptions(), logger)
	require.NoError(t, err)

	return usecase.NewIsochroneUseCase(routing, renderer, pdf.NewExporter(logger), logger)
}

func TestPipeline_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(orsFeatures([]int{300, 600, 900, 1200})))
	}))
	defer server.Close()

	uc := newPipeline(t, server.URL)

	result, err := uc.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 4, result.Polygons.Len())
	assert.InDelta(t, 55.1675, result.Origin.Point.X(), 1e-4)
	assert.InDelta(t, 25.0030, result.Origin.Point.Y(), 1e-4)

	require.NotNil(t, result.Document)
	assert.Equal(t, "isochrone_map.pdf", result.Document.Filename)
	assert.Equal(t, "application/pdf", result.Document.ContentType)
	assert.NotEmpty(t, result.Document.Data)
	assert.True(t, bytes.HasPrefix(result.Document.Data, []byte("%PDF-")))
	assert.True(t, bytes.HasPrefix(result.Preview, []byte("\x89PNG")))
}

func TestPipeline_ParseErrorMakesNoRequests(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	uc := newPipeline(t, server.URL)
	req := validRequest()
	req.Minutes = "a,b"

	result, err := uc.Generate(context.Background(), req)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.KindParse, apperrors.KindOf(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestPipeline_ProviderUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Access to this API has been disallowed"}`))
	}))
	defer server.Close()

	uc := newPipeline(t, server.URL)

	result, err := uc.Generate(context.Background(), validRequest())
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, apperrors.KindTransport, apperrors.KindOf(err))
}

func TestPipeline_MalformedFeature(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"value":300},"geometry":{"type":"Polygon","coordinates":[[[55.1,25.0]]]}}]}`))
	}))
	defer server.Close()

	uc := newPipeline(t, server.URL)

	result, err := uc.Generate(context.Background(), validRequest())
	assert.Nil(t, result)
	assert.Equal(t, apperrors.KindRender, apperrors.KindOf(err))
}
