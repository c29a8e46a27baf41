package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/isabeauty/agenda-api/internal/config"
	"github.com/isabeauty/agenda-api/internal/email"
	"github.com/isabeauty/agenda-api/internal/handler"
	appointmentHandler "github.com/isabeauty/agenda-api/internal/handler/appointment"
	catalogHandler "github.com/isabeauty/agenda-api/internal/handler/catalog"
	reportHandler "github.com/isabeauty/agenda-api/internal/handler/report"
	"github.com/isabeauty/agenda-api/internal/middleware"
	"github.com/isabeauty/agenda-api/internal/repository/jsonfile"
	"github.com/isabeauty/agenda-api/internal/router"
	appointmentService "github.com/isabeauty/agenda-api/internal/service/appointment"
	reportService "github.com/isabeauty/agenda-api/internal/service/report"
	"github.com/isabeauty/agenda-api/pkg/event"
	"github.com/isabeauty/agenda-api/pkg/logger"
	"github.com/isabeauty/agenda-api/pkg/messaging"
	"github.com/isabeauty/agenda-api/pkg/messaging/redis"
	"github.com/isabeauty/agenda-api/pkg/metrics"
)

func main() {
	// A .env file is optional; containerized runs set the environment directly.
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Load the appointment file. A corrupt file starts the service on an
	// empty collection rather than refusing to boot.
	store := jsonfile.NewStore(cfg.Store.Path, log.Logger)
	if _, err := store.Load(); err != nil {
		if errors.Is(err, jsonfile.ErrCorrupt) {
			log.Warn().Err(err).Str("path", cfg.Store.Path).Msg("appointment file unreadable, starting empty")
		} else {
			log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("failed to load appointment file")
		}
	}

	m := metrics.NewMetrics("agenda")

	var broker messaging.Broker = messaging.NoopBroker{}
	if cfg.Redis.Enabled {
		broker, err = redis.NewRedisBroker(redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	}
	defer broker.Close()

	var notifier email.Service
	if cfg.SMTP.Enabled {
		notifier = email.NewSMTPService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			To:       cfg.SMTP.To,
		}, logger.NewLogger(nil))
	}

	appointmentSvc := appointmentService.NewService(store, notifier, m)
	reportSvc := reportService.NewService(store)

	eventTracker := event.NewEventTrackerMiddleware(broker)

	h := handler.NewHandler()
	apptHandler := appointmentHandler.NewHandler(appointmentSvc)
	rptHandler := reportHandler.NewHandler(reportSvc)
	catHandler := catalogHandler.NewHandler()

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(
		apptHandler,
		rptHandler,
		catHandler,
		h,
		eventTracker,
		router.RouterConfig{
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			RequestTimeout: cfg.Server.RequestTimeout,
			CORSConfig:     corsConfig,
			MetricsPrefix:  "agenda_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("store", cfg.Store.Path).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
