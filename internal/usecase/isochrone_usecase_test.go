package usecase_test

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isochrone-map/internal/domain"
	apperrors "github.com/isochrone-map/internal/pkg/errors"
	"github.com/isochrone-map/internal/usecase"
	"github.com/isochrone-map/internal/usecase/dto"
)

// MockIsochroneRepository is a mock of IsochroneRepository
type MockIsochroneRepository struct {
	mock.Mock
}

func (m *MockIsochroneRepository) GetIsochrones(ctx context.Context, origin domain.Coordinate, thresholds domain.ThresholdSet) (*domain.IsochroneResponse, error) {
	args := m.Called(ctx, origin, thresholds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IsochroneResponse), args.Error(1)
}

// MockRenderer is a mock of MapRenderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, polygons *domain.PolygonCollection, origin domain.OriginPoint) (*domain.Figure, error) {
	args := m.Called(ctx, polygons, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Figure), args.Error(1)
}

func (m *MockRenderer) EncodePNG(fig *domain.Figure) ([]byte, error) {
	args := m.Called(fig)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockExporter is a mock of DocumentExporter
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(fig *domain.Figure) (*domain.Document, error) {
	args := m.Called(fig)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

var testOrigin = domain.Coordinate{Lat: 25.00307729247567, Lon: 55.167526256190804}

func squareFeature(seconds float64, d float64) domain.IsochroneFeature {
	lon, lat := testOrigin.Lon, testOrigin.Lat
	coords, _ := json.Marshal([][][]float64{{
		{lon - d, lat - d}, {lon + d, lat - d}, {lon + d, lat + d}, {lon - d, lat + d}, {lon - d, lat - d},
	}})
	return domain.IsochroneFeature{
		Type:       "Feature",
		Properties: domain.IsochroneProperties{Value: seconds},
		Geometry:   &domain.IsochroneGeometry{Type: "Polygon", Coordinates: coords},
	}
}

func sampleResponse() *domain.IsochroneResponse {
	return &domain.IsochroneResponse{
		Type: "FeatureCollection",
		Features: []domain.IsochroneFeature{
			squareFeature(300, 0.01),
			squareFeature(600, 0.02),
			squareFeature(900, 0.03),
			squareFeature(1200, 0.04),
		},
	}
}

func validRequest() dto.IsochroneRequest {
	return dto.NewIsochroneRequest(testOrigin.Lat, testOrigin.Lon, "5,10,15,20")
}

func TestIsochroneUseCase_Generate(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &MockIsochroneRepository{}
		renderer := &MockRenderer{}
		exporter := &MockExporter{}
		uc := usecase.NewIsochroneUseCase(repo, renderer, exporter, logger)

		fig := &domain.Figure{Image: image.NewRGBA(image.Rect(0, 0, 10, 10)), DPI: 100}
		doc := &domain.Document{Filename: domain.DocumentFilename, ContentType: domain.DocumentContentType, Data: []byte("%PDF-1.3")}

		repo.On("GetIsochrones", ctx, testOrigin, domain.ThresholdSet{5, 10, 15, 20}).Return(sampleResponse(), nil)
		renderer.On("Render", ctx, mock.AnythingOfType("*domain.PolygonCollection"), domain.NewOriginPoint(testOrigin)).Return(fig, nil)
		renderer.On("EncodePNG", fig).Return([]byte("png"), nil)
		exporter.On("Export", fig).Return(doc, nil)

		result, err := uc.Generate(ctx, validRequest())
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, 4, result.Polygons.Len())
		assert.Equal(t, []int{5, 10, 15, 20}, result.Polygons.Thresholds)
		assert.Equal(t, domain.CRSWGS84, result.Polygons.CRS)
		assert.Equal(t, doc, result.Document)
		assert.Equal(t, []byte("png"), result.Preview)
		require.Len(t, result.Summaries, 4)
		assert.Equal(t, 1200, result.Summaries[3].Seconds)
		assert.Equal(t, 5, result.Summaries[0].Vertices)

		repo.AssertExpectations(t)
		renderer.AssertExpectations(t)
		exporter.AssertExpectations(t)
	})

	t.Run("non-numeric minutes never reach the provider", func(t *testing.T) {
		repo := &MockIsochroneRepository{}
		uc := usecase.NewIsochroneUseCase(repo, &MockRenderer{}, &MockExporter{}, logger)

		req := validRequest()
		req.Minutes = "a,b"

		result, err := uc.Generate(ctx, req)
		assert.Nil(t, result)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindParse, apperrors.KindOf(err))

		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_THRESHOLDS", appErr.Code)

		repo.AssertNotCalled(t, "GetIsochrones", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		repo := &MockIsochroneRepository{}
		uc := usecase.NewIsochroneUseCase(repo, &MockRenderer{}, &MockExporter{}, logger)

		req := dto.NewIsochroneRequest(123, testOrigin.Lon, "5,10,15,20")

		result, err := uc.Generate(ctx, req)
		assert.Nil(t, result)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_COORDINATES", appErr.Code)
		repo.AssertNotCalled(t, "GetIsochrones", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		repo := &MockIsochroneRepository{}
		uc := usecase.NewIsochroneUseCase(repo, &MockRenderer{}, &MockExporter{}, logger)

		result, err := uc.Generate(ctx, dto.IsochroneRequest{Minutes: "5,10"})
		assert.Nil(t, result)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_COORDINATES", appErr.Code)
		repo.AssertNotCalled(t, "GetIsochrones", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider rejects the key", func(t *testing.T) {
		repo := &MockIsochroneRepository{}
		renderer := &MockRenderer{}
		exporter := &MockExporter{}
		uc := usecase.NewIsochroneUseCase(repo, renderer, exporter, logger)

		providerErr := &domain.ProviderError{StatusCode: 401, Body: `{"error":"Access to this API has been disallowed"}`}
		repo.On("GetIsochrones", ctx, testOrigin, domain.ThresholdSet{5, 10, 15, 20}).Return(nil, providerErr)

		result, err := uc.Generate(ctx, validRequest())
		assert.Nil(t, result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Equal(t, apperrors.KindTransport, apperrors.KindOf(err))

		appErr, _ := apperrors.As(err)
		assert.Equal(t, "ROUTING_PROVIDER_ERROR", appErr.Code)
		assert.Equal(t, 502, appErr.StatusCode)
		assert.Equal(t, 401, appErr.Details["provider_status"])

		renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
		exporter.AssertNotCalled(t, "Export", mock.Anything)
	})

	t.Run("provider unreachable", func(t *testing.T) {
		repo := &MockIsochroneRepository{}
		uc := usecase.NewIsochroneUseCase(repo, &MockRenderer{}, &MockExporter{}, logger)

		repo.On("GetIsochrones", ctx, testOrigin, domain.ThresholdSet{5, 10, 15, 20}).
			Return(nil, errors.New("failed to execute request: connection refused"))

		result, err := uc.Generate(ctx, validRequest())
		assert.Nil(t, result)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "ROUTING_PROVIDER_UNAVAILABLE", appErr.Code)
		assert.Equal(t, apperrors.KindTransport, appErr.Kind)
	})

	t.Run("malformed geometry", func(t *testing.T) {
		repo := &MockIsochroneRepository{}
		renderer := &MockRenderer{}
		exporter := &MockExporter{}
		uc := usecase.NewIsochroneUseCase(repo, renderer, exporter, logger)

		resp := sampleResponse()
		resp.Features[1].Geometry = nil
		repo.On("GetIsochrones", ctx, testOrigin, domain.ThresholdSet{5, 10, 15, 20}).Return(resp, nil)

		result, err := uc.Generate(ctx, validRequest())
		assert.Nil(t, result)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindRender, apperrors.KindOf(err))
		assert.ErrorIs(t, err, usecase.ErrMalformedGeometry)

		renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
		exporter.AssertNotCalled(t, "Export", mock.Anything)
	})

	t.Run("render failure", func(t *testing.T) {
		repo := &MockIsochroneRepository{}
		renderer := &MockRenderer{}
		exporter := &MockExporter{}
		uc := usecase.NewIsochroneUseCase(repo, renderer, exporter, logger)

		repo.On("GetIsochrones", ctx, testOrigin, domain.ThresholdSet{5, 10, 15, 20}).Return(sampleResponse(), nil)
		renderer.On("Render", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("basemap tile 12/1/1: 503"))

		result, err := uc.Generate(ctx, validRequest())
		assert.Nil(t, result)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "RENDER_FAILED", appErr.Code)
		assert.Equal(t, apperrors.KindRender, appErr.Kind)
		exporter.AssertNotCalled(t, "Export", mock.Anything)
	})

	t.Run("export failure", func(t *testing.T) {
		repo := &MockIsochroneRepository{}
		renderer := &MockRenderer{}
		exporter := &MockExporter{}
		uc := usecase.NewIsochroneUseCase(repo, renderer, exporter, logger)

		fig := &domain.Figure{Image: image.NewRGBA(image.Rect(0, 0, 10, 10)), DPI: 100}
		repo.On("GetIsochrones", ctx, testOrigin, domain.ThresholdSet{5, 10, 15, 20}).Return(sampleResponse(), nil)
		renderer.On("Render", ctx, mock.Anything, mock.Anything).Return(fig, nil)
		renderer.On("EncodePNG", fig).Return([]byte("png"), nil)
		exporter.On("Export", fig).Return(nil, errors.New("disk full"))

		result, err := uc.Generate(ctx, validRequest())
		assert.Nil(t, result)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "EXPORT_FAILED", appErr.Code)
	})
}

func TestIsochroneUseCase_GenerateGeoJSON(t *testing.T) {
	ctx := context.Background()
	repo := &MockIsochroneRepository{}
	renderer := &MockRenderer{}
	uc := usecase.NewIsochroneUseCase(repo, renderer, &MockExporter{}, zap.NewNop())

	repo.On("GetIsochrones", ctx, testOrigin, domain.ThresholdSet{5, 10, 15, 20}).Return(sampleResponse(), nil)

	resp, err := uc.GenerateGeoJSON(ctx, validRequest())
	require.NoError(t, err)

	assert.Equal(t, testOrigin, resp.Origin)
	assert.Equal(t, domain.CRSWGS84, resp.CRS)
	require.Len(t, resp.Isochrones.Features, 5)
	assert.Equal(t, 5, resp.Isochrones.Features[0].Properties["minutes"])
	assert.Equal(t, "Polygon", resp.Isochrones.Features[0].Geometry.GeoJSONType())
	assert.Equal(t, "Point", resp.Isochrones.Features[4].Geometry.GeoJSONType())
	assert.Equal(t, "origin", resp.Isochrones.Features[4].Properties["role"])
	require.Len(t, resp.Summaries, 4)

	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
}
