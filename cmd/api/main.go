package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"

	catalogadapters "github.com/sabordecasa/pedidos/internal/catalog/adapters"
	cataloghttp "github.com/sabordecasa/pedidos/internal/catalog/adapters/http"
	catalogpostgres "github.com/sabordecasa/pedidos/internal/catalog/adapters/postgres"
	catalogredis "github.com/sabordecasa/pedidos/internal/catalog/adapters/redis"
	catalogapp "github.com/sabordecasa/pedidos/internal/catalog/app"
	catalogports "github.com/sabordecasa/pedidos/internal/catalog/ports"
	"github.com/sabordecasa/pedidos/internal/config"
	"github.com/sabordecasa/pedidos/internal/database"
	"github.com/sabordecasa/pedidos/internal/kafka"
	ordersadapters "github.com/sabordecasa/pedidos/internal/orders/adapters"
	ordershttp "github.com/sabordecasa/pedidos/internal/orders/adapters/http"
	orderspostgres "github.com/sabordecasa/pedidos/internal/orders/adapters/postgres"
	ordersapp "github.com/sabordecasa/pedidos/internal/orders/app"
	ordersmetrics "github.com/sabordecasa/pedidos/internal/orders/metrics"
	paymenthttp "github.com/sabordecasa/pedidos/internal/payments/adapters/http"
	"github.com/sabordecasa/pedidos/internal/payments/adapters/mercadopago"
	"github.com/sabordecasa/pedidos/internal/telemetry"
)

const meterName = "github.com/sabordecasa/pedidos"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(parseLogLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var tel *telemetry.Telemetry
	if cfg.Telemetry.OTelEndpoint != "" {
		tel, err = telemetry.Initialize(ctx, telemetry.Config{
			ServiceName:    cfg.Service.Name,
			ServiceVersion: cfg.Service.Version,
			Environment:    cfg.Service.Environment,
			OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
			EnableTracing:  cfg.Telemetry.EnableTracing,
			EnableMetrics:  cfg.Telemetry.EnableMetrics,
			SampleRate:     cfg.Telemetry.SampleRate,
		})
		if err != nil {
			logger.Error("failed to initialize telemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tel.Shutdown(shutdownCtx); err != nil {
				logger.Error("telemetry shutdown failed", "error", err)
			}
		}()
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations completed successfully")
	}

	meter := otel.Meter(meterName)

	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create database metrics", "error", err)
		os.Exit(1)
	}
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create order metrics", "error", err)
		os.Exit(1)
	}
	httpMetrics, err := ordershttp.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}
	kafkaMetrics, err := kafka.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create kafka metrics", "error", err)
		os.Exit(1)
	}

	var eventBus kafka.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := kafka.NewPublisher(cfg.Kafka.Brokers)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close kafka publisher", "error", err)
			}
		}()
		eventBus = kafka.NewObservableEventBus(publisher, kafkaMetrics)
		logger.Info("kafka event bus enabled", "brokers", strings.Join(cfg.Kafka.Brokers, ","))
	} else {
		eventBus = kafka.NewNoopEventBus()
		logger.Info("no kafka brokers configured, events will be logged only")
	}

	orderRepo := ordersadapters.NewObservableRepository(orderspostgres.NewRepository(pool), dbMetrics)
	orderService := ordersapp.NewService(orderRepo, eventBus, logger, orderMetrics)

	var catalogRepo catalogports.CatalogRepository
	catalogRepo = catalogadapters.NewObservableRepository(catalogpostgres.NewCatalogRepository(pool), dbMetrics)
	if cfg.Redis.Addr != "" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis client", "error", err)
			}
		}()
		catalogRepo = catalogredis.NewCachedCatalogRepository(catalogRepo, redisClient, cfg.Redis.CacheTTL, logger)
		logger.Info("catalog cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	}
	catalogService := catalogapp.NewService(catalogRepo, logger)

	gateway := mercadopago.NewClient(cfg.Payment.BaseURL, cfg.Payment.AccessToken, cfg.Payment.NotificationURL)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.CheckHealth(r.Context(), pool); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}).Methods(http.MethodGet)
	router.HandleFunc(cfg.HTTP.MetricsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("# metrics are exported via OTLP\n"))
	}).Methods(http.MethodGet)

	ordershttp.NewHandler(orderService).Register(router)
	cataloghttp.NewHandler(catalogService).Register(router)
	paymenthttp.NewHandler(gateway, eventBus, logger).Register(router)

	corsMiddleware := cors.Default()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		corsMiddleware = cors.New(cors.Options{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		})
	}

	handler := withRecovery(withLogging(ordershttp.WithMetrics(corsMiddleware.Handler(router), httpMetrics)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		slog.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", time.Since(start),
		)
	})
}

func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(r.Context(), "panic recovered", "error", rec)
				respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
