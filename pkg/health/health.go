package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/pkg/database"
)

// Version information, set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

const pingTimeout = 2 * time.Second

// Handler handles health check endpoints.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler creates a new health check handler.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// HealthResponse is the probe payload used by /health and /ready.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// APIStatus is the payload of GET /api/health.
type APIStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// API reports whether the service can reach its store.
func (h *Handler) API(c *gin.Context) {
	if h.pingDatabase(c.Request.Context()) {
		c.JSON(http.StatusOK, APIStatus{Status: "healthy", Database: "connected"})
		return
	}

	c.JSON(http.StatusServiceUnavailable, APIStatus{Status: "unhealthy", Database: "disconnected"})
}

// Health is a liveness probe that always returns OK.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	})
}

// Ready is a readiness probe that fails while the database is unreachable.
func (h *Handler) Ready(c *gin.Context) {
	status, code, dbCheck := "ready", http.StatusOK, "ok"
	if !h.pingDatabase(c.Request.Context()) {
		status, code, dbCheck = "not_ready", http.StatusServiceUnavailable, "unhealthy"
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Checks:    map[string]string{"database": dbCheck},
	})
}

// Version returns build information about the service.
func (h *Handler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    Version,
		"git_commit": GitCommit,
		"build_time": BuildTime,
	})
}

// DBStats returns database connection pool statistics.
func (h *Handler) DBStats(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get database instance"})
		return
	}

	stats := sqlDB.Stats()
	c.JSON(http.StatusOK, gin.H{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_idle_time_closed": stats.MaxIdleTimeClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	})
}

func (h *Handler) pingDatabase(parent context.Context) bool {
	ctx, cancel := context.WithTimeout(parent, pingTimeout)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		h.logger.Error("health check: database ping failed", slog.String("error", err.Error()))
		return false
	}
	return true
}
