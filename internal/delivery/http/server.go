package http

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/isochrone-map/internal/config"
	"github.com/isochrone-map/internal/delivery/http/handler"
	"github.com/isochrone-map/internal/delivery/http/middleware"
	"github.com/isochrone-map/internal/pkg/errors"
	"github.com/isochrone-map/internal/pkg/metrics"
	"github.com/isochrone-map/internal/pkg/utils"
	"github.com/isochrone-map/internal/usecase/dto"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

const Version = "1.0.0"

// HealthChecker - зависимость, состояние которой отдаётся в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	isochroneHandler *handler.IsochroneHandler
	pageHandler      *handler.PageHandler

	checks map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	isochroneHandler *handler.IsochroneHandler,
	pageHandler *handler.PageHandler,
	checks map[string]HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Isochrone Map",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		Immutable:    true,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		isochroneHandler: isochroneHandler,
		pageHandler:      pageHandler,
		checks:           checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", metrics.Handler())

	// Interactive page
	s.app.Get("/", s.pageHandler.Show)
	s.app.Post("/", s.pageHandler.Submit)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.health)

	// Isochrone routes
	api.Post("/isochrones", s.isochroneHandler.CreateIsochrones)
	api.Get("/isochrones/map.pdf", s.isochroneHandler.GetMapPDF)
	api.Get("/isochrones/map.png", s.isochroneHandler.GetMapPNG)
}

// health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (s *Server) health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:  "healthy",
		Version: Version,
	}

	if len(s.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		resp.Checks = make(map[string]string, len(s.checks))
		for name, check := range s.checks {
			if err := check.Health(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	if resp.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// App - доступ к fiber.App (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404, 405, паники), в общем формате
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			appErr := errors.New(errors.KindInternal, "HTTP_ERROR", e.Message, e.Code)
			if e.Code == fiber.StatusNotFound {
				appErr.Code = "NOT_FOUND"
			}
			return utils.SendError(c, appErr)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return utils.SendError(c, err)
	}
}
