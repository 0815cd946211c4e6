package handler

import (
	"bytes"
	"embed"
	"encoding/base64"
	"html/template"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/isochrone-map/internal/config"
	"github.com/isochrone-map/internal/domain"
	"github.com/isochrone-map/internal/pkg/errors"
	"github.com/isochrone-map/internal/usecase/dto"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

const minutesPlaceholder = "5,10,15,20"

// PageData - данные для шаблона страницы
type PageData struct {
	Title       string
	Lat         string
	Lon         string
	Minutes     string
	Placeholder string
	Error       string
	PreviewURI  template.URL
	DocumentURI template.URL
	Filename    string
	Summaries   []domain.PolygonSummary
}

// PageHandler - интерактивная страница: форма, превью карты и ссылка на PDF
type PageHandler struct {
	isochroneUC IsochroneGenerator
	templates   *template.Template
	defaults    config.DefaultsConfig
	logger      *zap.Logger
}

// NewPageHandler - создание нового PageHandler
func NewPageHandler(isochroneUC IsochroneGenerator, defaults config.DefaultsConfig, logger *zap.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		isochroneUC: isochroneUC,
		templates:   tmpl,
		defaults:    defaults,
		logger:      logger,
	}, nil
}

// Show - форма со значениями по умолчанию
func (h *PageHandler) Show(c *fiber.Ctx) error {
	return h.render(c, h.newPageData())
}

// Submit - обработка формы. Пустой список минут просто показывает форму заново.
func (h *PageHandler) Submit(c *fiber.Ctx) error {
	data := h.newPageData()
	data.Lat = strings.TrimSpace(c.FormValue("lat", data.Lat))
	data.Lon = strings.TrimSpace(c.FormValue("lon", data.Lon))
	data.Minutes = strings.TrimSpace(c.FormValue("minutes"))

	if data.Minutes == "" {
		return h.render(c, data)
	}

	req, err := parseForm(data)
	if err != nil {
		data.Error = errorMessage(err)
		return h.render(c, data)
	}

	result, err := h.isochroneUC.Generate(c.Context(), req)
	if err != nil {
		h.logger.Warn("Map generation failed", zap.Error(err))
		data.Error = errorMessage(err)
		return h.render(c, data)
	}

	data.PreviewURI = dataURI("image/png", result.Preview)
	data.DocumentURI = dataURI(result.Document.ContentType, result.Document.Data)
	data.Filename = result.Document.Filename
	data.Summaries = result.Summaries

	return h.render(c, data)
}

func (h *PageHandler) newPageData() PageData {
	return PageData{
		Title:       "Isochrone Map Generator",
		Lat:         strconv.FormatFloat(h.defaults.Lat, 'f', -1, 64),
		Lon:         strconv.FormatFloat(h.defaults.Lon, 'f', -1, 64),
		Placeholder: minutesPlaceholder,
	}
}

func (h *PageHandler) render(c *fiber.Ctx, data PageData) error {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		return err
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func parseForm(data PageData) (dto.IsochroneRequest, error) {
	lat, err := strconv.ParseFloat(data.Lat, 64)
	if err != nil {
		return dto.IsochroneRequest{}, errors.ErrInvalidCoordinates.Wrap(err)
	}
	lon, err := strconv.ParseFloat(data.Lon, 64)
	if err != nil {
		return dto.IsochroneRequest{}, errors.ErrInvalidCoordinates.Wrap(err)
	}

	return dto.NewIsochroneRequest(lat, lon, data.Minutes), nil
}

// errorMessage - текст ошибки для страницы. "HTTP error" только для ответа провайдера
// с кодом вне 2xx; сетевые сбои и нечитаемый ответ идут общим текстом.
func errorMessage(err error) string {
	if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrRoutingProvider.Code {
		return "HTTP error occurred: " + err.Error()
	}
	return "An error occurred: " + err.Error()
}

func dataURI(contentType string, data []byte) template.URL {
	return template.URL("data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data))
}
