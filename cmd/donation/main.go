package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/donation-tracker/docs"
	"github.com/tair/donation-tracker/internal/config"
	"github.com/tair/donation-tracker/internal/donation"
	httpDelivery "github.com/tair/donation-tracker/internal/donation/delivery/http"
	"github.com/tair/donation-tracker/internal/donation/repository"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/auth"
	"github.com/tair/donation-tracker/pkg/cache"
	"github.com/tair/donation-tracker/pkg/database"
	"github.com/tair/donation-tracker/pkg/logger"
	"github.com/tair/donation-tracker/pkg/metrics"
	"github.com/tair/donation-tracker/pkg/tracing"
)

func main() {
	configDir := flag.String("config", ".", "directory holding config.yaml and .env")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		logger.Init(logger.Options{Service: "donation-service", Development: true})
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(logger.Options{
		Service:     cfg.Service.Name,
		Development: cfg.Development(),
		Level:       cfg.Service.LogLevel,
	})

	logger.Logger.Info().
		Str("service", cfg.Service.Name).
		Str("environment", cfg.Service.Environment).
		Str("log_level", cfg.Service.LogLevel).
		Msg("Starting donation service")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.TracerConfig())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := repository.AutoMigrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Str("driver", cfg.DB.Driver).Msg("Database initialized successfully")

	pageCache := connectCache(cfg)
	publisher := connectPublisher(cfg)
	if publisher != nil {
		defer publisher.Close()
	}

	authenticator, err := auth.NewAuthenticator(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize authenticator")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize handler with Wire DI
	handler, err := donation.InitializeHTTPHandler(db, authenticator, m, publisher, pageCache)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	server := newServer(cfg, handler, m)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTP.Port).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func newServer(cfg *config.Config, handler *httpDelivery.DonationHandler, m *metrics.Metrics) *http.Server {
	router := mux.NewRouter()

	mwConfig := httpDelivery.DefaultMiddlewareConfig(m, cfg.Origins(), cfg.HTTP.RequestTimeout)
	httpDelivery.RegisterMiddlewares(router, mwConfig)

	handler.RegisterRoutes(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	docs.SwaggerInfo.Host = "localhost:" + cfg.HTTP.Port
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           httpDelivery.SetupCORS(mwConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// connectCache returns nil when redis is not configured or unreachable
func connectCache(cfg *config.Config) *cache.PageCache {
	if cfg.Redis.Addr == "" {
		logger.Logger.Info().Msg("Redis not configured, list caching disabled")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, list caching disabled")
		return nil
	}
	return cache.New(client, cfg.Service.Name, cfg.Redis.CacheTTL)
}

// connectPublisher returns nil when kafka is not configured or unreachable
func connectPublisher(cfg *config.Config) *kafka.Publisher {
	brokers := cfg.KafkaBrokers()
	if len(brokers) == 0 {
		logger.Logger.Info().Msg("Kafka not configured, lifecycle events disabled")
		return nil
	}
	publisher, err := kafka.NewPublisher(brokers, cfg.Kafka.Topic)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka unavailable, lifecycle events disabled")
		return nil
	}
	return publisher
}
