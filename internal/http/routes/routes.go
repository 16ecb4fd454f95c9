package routes

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/accesscode"
	"github.com/mo-amir99/langswap-server-go/internal/features/auth"
	"github.com/mo-amir99/langswap-server-go/internal/features/coupon"
	"github.com/mo-amir99/langswap-server-go/internal/features/dataset"
	"github.com/mo-amir99/langswap-server-go/internal/features/favorite"
	"github.com/mo-amir99/langswap-server-go/internal/features/lesson"
	"github.com/mo-amir99/langswap-server-go/internal/features/progress"
	"github.com/mo-amir99/langswap-server-go/internal/features/subscription"
	"github.com/mo-amir99/langswap-server-go/internal/features/user"
	"github.com/mo-amir99/langswap-server-go/internal/middleware"
	"github.com/mo-amir99/langswap-server-go/pkg/cache"
	"github.com/mo-amir99/langswap-server-go/pkg/config"
	"github.com/mo-amir99/langswap-server-go/pkg/health"
	pkgmiddleware "github.com/mo-amir99/langswap-server-go/pkg/middleware"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

// authRequestsPerMinute bounds credential and access code attempts per client IP.
const authRequestsPerMinute = 20

// Register wires all feature routes onto the engine. ctx bounds the lifetime
// of the rate limiter sweepers.
func Register(ctx context.Context, engine *gin.Engine, cfg *config.Config, db *gorm.DB, cacheClient cache.Client, logger *slog.Logger) {
	// Health check endpoints (no /api prefix for Kubernetes probes)
	healthHandler := health.NewHandler(db, logger)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/version", healthHandler.Version)

	// Metrics endpoint for Prometheus
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !cfg.IsProduction() {
		engine.GET("/debug/db-stats", healthHandler.DBStats)
	}

	api := engine.Group("/api")
	api.GET("/health", healthHandler.API)

	authMW := middleware.NewAuthMiddleware(db, cfg.JWTSecret, logger)
	adminOnly := authMW.RequireRoles(types.RoleAdmin)
	authenticated := authMW.Authenticated()
	authLimiter := pkgmiddleware.NewRateLimiter(ctx, authRequestsPerMinute, time.Minute).Middleware()

	catalog := lesson.NewCatalog(db, cacheClient, cfg.Redis.TTL, logger)

	lessonHandler := lesson.NewHandler(db, logger, catalog)
	lesson.RegisterRoutes(api, lessonHandler)

	progressHandler := progress.NewHandler(db, logger)
	progress.RegisterRoutes(api, progressHandler)

	favoriteHandler := favorite.NewHandler(db, logger)
	favorite.RegisterRoutes(api, favoriteHandler)

	authHandler := auth.NewHandler(db, logger, cfg)
	auth.RegisterRoutes(api, authHandler, authLimiter, authenticated)

	userHandler := user.NewHandler(db, logger)
	user.RegisterRoutes(api, userHandler, adminOnly)

	accessCodeHandler := accesscode.NewHandler(db, logger, cfg)
	accesscode.RegisterRoutes(api, accessCodeHandler, adminOnly, authLimiter)

	couponHandler := coupon.NewHandler(db, logger)
	coupon.RegisterRoutes(api, couponHandler, adminOnly, authenticated)

	subscriptionHandler := subscription.NewHandler(db, logger)
	subscription.RegisterRoutes(api, subscriptionHandler, authenticated)

	datasetHandler := dataset.NewHandler(db, logger, catalog)
	dataset.RegisterRoutes(api, datasetHandler, adminOnly)
}
