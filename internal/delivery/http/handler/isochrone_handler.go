package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/isochrone-map/internal/delivery/http/middleware"
	"github.com/isochrone-map/internal/domain"
	"github.com/isochrone-map/internal/pkg/errors"
	"github.com/isochrone-map/internal/pkg/utils"
	"github.com/isochrone-map/internal/usecase/dto"
	"go.uber.org/zap"
)

// IsochroneGenerator - конвейер построения карты изохрон
type IsochroneGenerator interface {
	Generate(ctx context.Context, req dto.IsochroneRequest) (*domain.IsochroneMap, error)
	GenerateGeoJSON(ctx context.Context, req dto.IsochroneRequest) (*dto.IsochroneGeoJSONResponse, error)
}

// IsochroneHandler - обработчик JSON API изохрон
type IsochroneHandler struct {
	isochroneUC IsochroneGenerator
	logger      *zap.Logger
}

// NewIsochroneHandler - создание нового IsochroneHandler
func NewIsochroneHandler(isochroneUC IsochroneGenerator, logger *zap.Logger) *IsochroneHandler {
	return &IsochroneHandler{
		isochroneUC: isochroneUC,
		logger:      logger,
	}
}

// CreateIsochrones godoc
// @Summary Isochrone polygons as GeoJSON
// @Description Запрашивает полигоны доступности у openrouteservice и возвращает их как GeoJSON FeatureCollection вместе со сводкой
// @Tags isochrones
// @Accept json
// @Produce json
// @Param request body dto.IsochroneRequest true "Origin and comma-separated minutes"
// @Success 200 {object} utils.SuccessResponse{data=dto.IsochroneGeoJSONResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/isochrones [post]
func (h *IsochroneHandler) CreateIsochrones(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.IsochroneRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}

	result, err := h.isochroneUC.GenerateGeoJSON(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     len(result.Summaries),
		TimeMSec:  float64(time.Since(start).Microseconds()) / 1000,
		RequestID: middleware.GetRequestID(c),
	})
}

// GetMapPDF godoc
// @Summary Isochrone map as PDF
// @Description Строит карту изохрон поверх подложки OpenStreetMap и возвращает её как PDF
// @Tags isochrones
// @Produce application/pdf
// @Param lat query number true "Latitude" example(25.00307729247567)
// @Param lon query number true "Longitude" example(55.167526256190804)
// @Param minutes query string true "Comma-separated minutes" example(5,10,15,20)
// @Success 200 {file} file
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/isochrones/map.pdf [get]
func (h *IsochroneHandler) GetMapPDF(c *fiber.Ctx) error {
	result, err := h.generate(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	doc := result.Document
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	return c.Send(doc.Data)
}

// GetMapPNG godoc
// @Summary Isochrone map preview as PNG
// @Tags isochrones
// @Produce image/png
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param minutes query string true "Comma-separated minutes"
// @Success 200 {file} file
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/isochrones/map.png [get]
func (h *IsochroneHandler) GetMapPNG(c *fiber.Ctx) error {
	result, err := h.generate(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(result.Preview)
}

func (h *IsochroneHandler) generate(c *fiber.Ctx) (*domain.IsochroneMap, error) {
	var req dto.IsochroneRequest
	if err := c.QueryParser(&req); err != nil {
		return nil, errors.ErrInvalidRequest.Wrap(err)
	}

	return h.isochroneUC.Generate(c.Context(), req)
}
