package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vintagenote/vn_backend/internal/adapters/ratecache"
	"github.com/vintagenote/vn_backend/internal/adapters/ratesource"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
	"github.com/vintagenote/vn_backend/internal/core/services"
	"github.com/vintagenote/vn_backend/internal/handlers"
	"github.com/vintagenote/vn_backend/internal/middleware"
	"github.com/vintagenote/vn_backend/internal/platform/config"
	"github.com/vintagenote/vn_backend/internal/platform/scheduler"
	"github.com/vintagenote/vn_backend/internal/repositories/database/pgsql"
	"github.com/vintagenote/vn_backend/internal/utils"
	"github.com/vintagenote/vn_backend/pkg/database"
)

const shutdownTimeout = 15 * time.Second

// @title Vintage Note API
// @version 1.0
// @description Inventory, package and sales tracking for vintage resellers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Database migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateCache, closeCache, err := newRateCache(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize rate cache", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeCache()
	rateSource := ratesource.NewHTTPSource(cfg.RateAPIURL, cfg.RateAPITimeout)

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, rateSource, rateCache)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	sched := scheduler.New(cfg.Location, logger)
	if cfg.RateWarmupEnabled {
		if err := sched.AddRateWarmup(cfg.RateWarmupSchedule, serviceContainer.ExchangeRate); err != nil {
			logger.Error("Failed to schedule rate warmup", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	sched.Start()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register request validators", slog.String("error", err.Error()))
		os.Exit(1)
	}
	handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server exited")
}

// newRateCache builds the configured rate cache backend. The returned func releases it.
func newRateCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RateCache, func(), error) {
	if cfg.RateCacheBackend != config.RateCacheRedis {
		logger.Info("Using in-memory rate cache")
		return ratecache.NewMemoryCache(), func() {}, nil
	}

	client := ratecache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}
	logger.Info("Using redis rate cache", slog.String("addr", cfg.RedisAddr))
	return ratecache.NewRedisCache(client), func() {
		if err := client.Close(); err != nil {
			logger.Error("Failed to close redis client", slog.String("error", err.Error()))
		}
	}, nil
}
