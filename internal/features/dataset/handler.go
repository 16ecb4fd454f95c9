package dataset

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/lesson"
	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
)

// Handler processes catalog administration requests.
type Handler struct {
	db      *gorm.DB
	logger  *slog.Logger
	catalog *lesson.Catalog
}

// NewHandler constructs a dataset handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, catalog *lesson.Catalog) *Handler {
	return &Handler{
		db:      db,
		logger:  logger,
		catalog: catalog,
	}
}

// Init seeds the lesson catalog.
func (h *Handler) Init(c *gin.Context) {
	force := request.QueryBool(c, "force", false)

	result, err := Init(h.db.WithContext(c.Request.Context()), force)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if !result.Seeded {
		response.JSONNoStore(c, http.StatusOK, gin.H{"message": "Data already initialized", "count": result.Count})
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	h.logger.Info("lesson catalog initialized",
		slog.Int64("count", result.Count),
		slog.Bool("force", force),
	)
	response.JSONNoStore(c, http.StatusOK, gin.H{"message": "Data initialized successfully", "count": result.Count})
}

// Clear wipes lessons and all learner data.
func (h *Handler) Clear(c *gin.Context) {
	result, err := Clear(h.db.WithContext(c.Request.Context()))
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.catalog.Invalidate(c.Request.Context())
	h.logger.Info("learning data cleared",
		slog.Int64("lessons", result.Lessons),
		slog.Int64("progress", result.Progress),
		slog.Int64("favorites", result.Favorites),
	)
	response.JSONNoStore(c, http.StatusOK, gin.H{"message": "All data cleared"})
}
