package main

// @title Isochrone Map API
// @version 1.0.0
// @description Изохроны openrouteservice поверх подложки OpenStreetMap: GeoJSON, PNG и PDF.
// @description
// @description Основные возможности:
// @description - Полигоны доступности на автомобиле для набора порогов времени
// @description - Карта с подложкой OpenStreetMap в PNG и PDF
// @description - Интерактивная страница с формой на /

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/isochrone-map/docs"
	"github.com/isochrone-map/internal/config"
	httpDelivery "github.com/isochrone-map/internal/delivery/http"
	"github.com/isochrone-map/internal/delivery/http/handler"
	"github.com/isochrone-map/internal/domain/repository"
	"github.com/isochrone-map/internal/infrastructure/basemap"
	"github.com/isochrone-map/internal/infrastructure/openrouteservice"
	"github.com/isochrone-map/internal/infrastructure/pdf"
	"github.com/isochrone-map/internal/infrastructure/render"
	"github.com/isochrone-map/internal/pkg/logger"
	"github.com/isochrone-map/internal/repository/cache"
	"github.com/isochrone-map/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	log.Info("Starting Isochrone Map")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("routing_profile", cfg.Routing.Profile),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	// 3. Tile cache: Redis when enabled, otherwise no-op
	checks := map[string]httpDelivery.HealthChecker{}
	var cacheRepo repository.CacheRepository = cache.NewNoopCacheRepository()
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, &cfg.Cache, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
		checks["redis"] = redisClient
	}

	// 4. Initialize Repositories
	routingRepo := openrouteservice.NewClient(&cfg.Routing, log)
	tileRepo := basemap.NewClient(&cfg.Basemap, cacheRepo, log)

	log.Info("Repositories initialized")

	// 5. Rendering and export
	renderer, err := render.NewRenderer(tileRepo, render.Options{
		MaxTiles:    cfg.Basemap.MaxTiles,
		MaxZoom:     cfg.Basemap.MaxZoom,
		Concurrency: cfg.Basemap.Concurrency,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize renderer", zap.Error(err))
	}
	exporter := pdf.NewExporter(log)

	// 6. Initialize Use Cases
	isochroneUC := usecase.NewIsochroneUseCase(routingRepo, renderer, exporter, log)

	log.Info("Use cases initialized")

	// 7. Initialize Handlers
	isochroneHandler := handler.NewIsochroneHandler(isochroneUC, log)
	pageHandler, err := handler.NewPageHandler(isochroneUC, cfg.Defaults, log)
	if err != nil {
		log.Fatal("Failed to initialize page handler", zap.Error(err))
	}

	log.Info("Handlers initialized")

	// 8. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, isochroneHandler, pageHandler, checks)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
