package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/isabeauty/agenda-api/internal/handler"
	"github.com/isabeauty/agenda-api/internal/middleware"
	"github.com/isabeauty/agenda-api/pkg/event"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type EventHandler interface {
	Handler
	RegisterRoutesWithEvents(*gin.RouterGroup, *event.EventTrackerMiddleware)
}

type Router struct {
	engine       *gin.Engine
	appointmentH EventHandler
	reportH      Handler
	catalogH     Handler
	h            *handler.Handler
	eventTracker *event.EventTrackerMiddleware
	metrics      *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	RateLimit      rate.Limit
	RateBurst      int
	RequestTimeout time.Duration
	CORSConfig     middleware.CORSConfig
	MetricsPrefix  string
}

func NewRouter(
	appointmentH EventHandler,
	reportH Handler,
	catalogH Handler,
	h *handler.Handler,
	eventTracker *event.EventTrackerMiddleware,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	handler.RegisterValidators()

	metrics := initRouterMetrics(config.MetricsPrefix)

	r := &Router{
		engine:       engine,
		appointmentH: appointmentH,
		reportH:      reportH,
		catalogH:     catalogH,
		h:            h,
		eventTracker: eventTracker,
		metrics:      metrics,
	}

	timeout := config.RequestTimeout
	if timeout == 0 {
		timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   float64(config.RateLimit),
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	r.appointmentH.RegisterRoutesWithEvents(api, r.eventTracker)
	r.catalogH.RegisterRoutes(api)

	// Report views are recomputed on every request; short-lived client
	// caching keeps repeated dashboard polls cheap.
	reports := api.Group("")
	reports.Use(middleware.Cache(middleware.DefaultCacheConfig()))
	r.reportH.RegisterRoutes(reports)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}

func (r *Router) Use(middleware ...gin.HandlerFunc) {
	r.engine.Use(middleware...)
}
