package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/hotel_frontdesk/internal/adapters/activity"
	"github.com/SscSPs/hotel_frontdesk/internal/core/ports"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_frontdesk/internal/core/services"
	"github.com/SscSPs/hotel_frontdesk/internal/handlers"
	"github.com/SscSPs/hotel_frontdesk/internal/middleware"
	"github.com/SscSPs/hotel_frontdesk/internal/observability/metrics"
	"github.com/SscSPs/hotel_frontdesk/internal/platform/config"
	"github.com/SscSPs/hotel_frontdesk/internal/platform/seed"
	"github.com/SscSPs/hotel_frontdesk/internal/repositories/database/pgsql"
	"github.com/SscSPs/hotel_frontdesk/internal/repositories/memory"
	"github.com/SscSPs/hotel_frontdesk/pkg/database"
)

// @title Hotel Front Desk API
// @version 1.0
// @description Reservations, folios and payments for the hotel front desk.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var seedData *seed.Data
	if cfg.SettingsFile != "" {
		seedData, err = seed.LoadFile(cfg.SettingsFile)
		if err != nil {
			logger.Error("Failed to load settings file", slog.String("path", cfg.SettingsFile), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	repos, pool, err := setupStorage(ctx, cfg, seedData, logger)
	if err != nil {
		logger.Error("Failed to set up storage", slog.String("storage", cfg.Storage), slog.String("error", err.Error()))
		os.Exit(1)
	}
	if pool != nil {
		defer database.ClosePgxPool(pool, logger)
		metrics.Init(func() (int32, int32, int32) {
			s := pool.Stat()
			return s.AcquiredConns(), s.IdleConns(), s.TotalConns()
		})
	} else {
		metrics.Init(nil)
	}

	sink, closeSink := setupActivitySink(cfg, logger)
	defer closeSink()

	container := services.NewServiceContainer(cfg, repos, services.WithActivitySink(sink))

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, metrics, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.MetricsMiddleware(),
		gin.Recovery(),
		cors.New(corsConfig(cfg)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	terminalLimiter := limiter.New(limitermemory.NewStore(), rate)

	handlers.RegisterRoutes(r, cfg, container, middleware.RateLimit(terminalLimiter))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDevLogging() {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// setupStorage builds the repositories for the configured backend and applies the
// settings seed when one was loaded. pool is nil for in-memory storage.
func setupStorage(ctx context.Context, cfg *config.Config, seedData *seed.Data, logger *slog.Logger) (portsrepo.RepositoryProvider, *pgxpool.Pool, error) {
	if cfg.Storage == config.StorageMemory {
		store := memory.NewStore()
		if seedData != nil {
			if err := store.ApplySeed(ctx, seedData); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(store), nil, nil
	}

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, "file://migrations")
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if seedData != nil {
		if err := pgsql.ApplySeed(ctx, pool, seedData); err != nil {
			pool.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Settings seed applied", slog.String("path", cfg.SettingsFile))
	}
	return pgsql.NewRepositoryProvider(pool), pool, nil
}

// setupActivitySink logs every event and, when brokers are configured, publishes it to
// Kafka. Delivery runs off the request path.
func setupActivitySink(cfg *config.Config, logger *slog.Logger) (ports.ActivitySink, func()) {
	sinks := activity.MultiSink{activity.LogSink{}}
	var kafka *activity.KafkaSink
	if len(cfg.KafkaBrokers) > 0 {
		var err error
		kafka, err = activity.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaActivityTopic)
		if err != nil {
			logger.Error("Kafka activity sink unavailable; events will only be logged", slog.String("error", err.Error()))
		} else {
			sinks = append(sinks, kafka)
		}
	}

	async := activity.NewAsyncSink(sinks, cfg.ActivityBuffer)
	return async, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := async.Close(ctx); err != nil {
			logger.Warn("Activity events not fully drained", slog.String("error", err.Error()))
		}
		if kafka != nil {
			if err := kafka.Close(); err != nil {
				logger.Warn("Failed to close Kafka producer", slog.String("error", err.Error()))
			}
		}
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSOrigins
	}
	c.AddAllowHeaders("Authorization", middleware.TerminalIDHeader)
	return c
}
