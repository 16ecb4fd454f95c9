package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/langswap-server-go/internal/bootstrap"
	"github.com/mo-amir99/langswap-server-go/internal/features/subscription"
	"github.com/mo-amir99/langswap-server-go/internal/http/routes"
	"github.com/mo-amir99/langswap-server-go/pkg/cache"
	"github.com/mo-amir99/langswap-server-go/pkg/config"
	"github.com/mo-amir99/langswap-server-go/pkg/database"
	"github.com/mo-amir99/langswap-server-go/pkg/jobs"
	"github.com/mo-amir99/langswap-server-go/pkg/logger"
	"github.com/mo-amir99/langswap-server-go/pkg/metrics"
	"github.com/mo-amir99/langswap-server-go/pkg/middleware"
	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := validation.Register(); err != nil {
		appLogger.Error("validator registration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.Connect(ctx, cfg.Database, appLogger)
	if err != nil {
		appLogger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := database.Close(db, appLogger); err != nil {
			appLogger.Error("database close failed", slog.String("error", err.Error()))
		}
	}()

	if err := bootstrap.ApplyDatabaseMigrations(db, cfg, appLogger); err != nil {
		appLogger.Error("migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := bootstrap.EnsureDefaultAdmin(db, cfg.Admin, appLogger); err != nil {
		appLogger.Error("ensure default admin failed", slog.String("error", err.Error()))
	}

	cacheClient, err := cache.New(ctx, cfg.Redis, appLogger)
	if err != nil {
		appLogger.Error("cache connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cacheClient.Close()

	scheduler := jobs.NewScheduler(appLogger)
	scheduler.AddJob(subscription.NewExpirationJob(db, appLogger), cfg.SubscriptionSweepInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := gin.New()

	router.Use(middleware.Recovery(appLogger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID())                       // Add request IDs for tracing
	router.Use(middleware.Compression(middleware.BestSpeed)) // Compress responses (gzip)
	router.Use(middleware.RequestLogger(appLogger))          // Log all requests
	router.Use(middleware.SecurityHeaders())                 // Add security headers
	router.Use(middleware.RequestSizeLimit(1 << 20))         // 1MB limit
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	router.Use(metrics.Middleware())       // Collect Prometheus metrics
	router.Use(request.Handler(appLogger)) // Classify errors left on the context

	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimitPerMinute, time.Minute)
	router.Use(rateLimiter.Middleware())

	routes.Register(ctx, router, cfg, db, cacheClient, appLogger)

	srv := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		appLogger.Info("server starting",
			slog.String("addr", cfg.ServerAddress()),
			slog.String("env", cfg.Env),
			slog.String("log_level", cfg.LogLevel),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server listen failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	appLogger.Info("server started successfully")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", slog.String("error", err.Error()))
	} else {
		appLogger.Info("server stopped gracefully")
	}
}
