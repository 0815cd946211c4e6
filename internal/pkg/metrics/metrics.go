package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isochrone",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "isochrone",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "path"})

	// Pipeline metrics
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "isochrone",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Duration of map generation stages",
		Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"stage"})

	PipelineFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isochrone",
		Subsystem: "pipeline",
		Name:      "failures_total",
		Help:      "Map generation failures by error kind",
	}, []string{"kind"})

	ProviderResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isochrone",
		Subsystem: "routing",
		Name:      "responses_total",
		Help:      "Routing provider responses by HTTP status",
	}, []string{"status"})

	TileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "isochrone",
		Subsystem: "basemap",
		Name:      "cache_hits_total",
		Help:      "Basemap tiles served from cache",
	})

	TileCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "isochrone",
		Subsystem: "basemap",
		Name:      "cache_misses_total",
		Help:      "Basemap tiles fetched from the tile server",
	})
)

// ObserveStage записывает длительность стадии, начатой в start
func ObserveStage(stage string, start time.Time) {
	StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Middleware - метрики HTTP запросов. Ошибка из цепочки сразу отдаётся
// в ErrorHandler приложения, чтобы в метку попал итоговый статус.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		code := c.Response().StatusCode()
		path := unmatchedPath
		if code != fiber.StatusNotFound {
			// строки fiber живут до конца запроса, метки Prometheus хранятся дольше
			path = utils.CopyString(c.Route().Path)
		}
		method := utils.CopyString(c.Method())

		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return nil
	}
}

// unmatchedPath - метка для запросов без маршрута, чтобы не плодить серии
const unmatchedPath = "unmatched"

// Handler - обработчик /metrics для Prometheus
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
