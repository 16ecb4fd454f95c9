package lesson

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

const catalogMaxAge = 300

// Handler processes lesson catalog HTTP requests.
type Handler struct {
	db      *gorm.DB
	logger  *slog.Logger
	catalog *Catalog
}

// NewHandler constructs a lesson handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger, catalog *Catalog) *Handler {
	return &Handler{
		db:      db,
		logger:  logger,
		catalog: catalog,
	}
}

// Root answers the API index.
func (h *Handler) Root(c *gin.Context) {
	response.Message(c, http.StatusOK, "LangSwap Language Learning API", nil)
}

// List returns lessons filtered by category and language mode.
func (h *Handler) List(c *gin.Context) {
	filters := ListFilters{
		Category:     strings.TrimSpace(c.Query("category")),
		LanguageMode: types.LanguageMode(strings.TrimSpace(c.Query("languageMode"))),
	}
	if filters.LanguageMode != "" && !filters.LanguageMode.Valid() {
		h.respondError(c, ErrInvalidLanguageMode)
		return
	}

	lessons, err := h.catalog.List(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.JSONWithCache(c, http.StatusOK, lessons, catalogMaxAge)
}

// GetByID returns a single lesson.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := request.UUIDParam(c, "lessonId")
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid lesson ID", err)
		return
	}

	lesson, err := Get(h.db.WithContext(c.Request.Context()), id)
	if errors.Is(err, ErrLessonNotFound) {
		h.respondError(c, err)
		return
	}
	if err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, "Invalid lesson ID", err)
		return
	}

	response.JSONWithCache(c, http.StatusOK, lesson, catalogMaxAge)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLessonNotFound):
		response.ErrorWithLog(h.logger, c, http.StatusNotFound, "Lesson not found", err)
	case errors.Is(err, ErrInvalidLanguageMode):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	default:
		_ = c.Error(err)
	}
}
