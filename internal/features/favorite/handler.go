package favorite

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/internal/features/lesson"
	"github.com/mo-amir99/langswap-server-go/pkg/metrics"
	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
)

// Handler processes favorites HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a favorites handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

type toggleRequest struct {
	UserID    string             `json:"userId" binding:"max=255"`
	LessonID  string             `json:"lessonId" binding:"required,max=255"`
	ItemIndex *int               `json:"itemIndex" binding:"required,gte=0"`
	ItemData  *lesson.LessonItem `json:"itemData"`
}

type toggleResponse struct {
	Success bool `json:"success"`
	ToggleResult
}

// Toggle adds or removes a favorite item.
func (h *Handler) Toggle(c *gin.Context) {
	var req toggleRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		response.FromAppError(h.logger, c, appErr)
		return
	}

	result, err := Toggle(h.db.WithContext(c.Request.Context()), ToggleInput{
		UserID:    request.UserIDOrDefault(req.UserID),
		LessonID:  req.LessonID,
		ItemIndex: *req.ItemIndex,
		ItemData:  req.ItemData,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	metrics.RecordFavoriteToggle(result.Action)
	response.JSONNoStore(c, http.StatusOK, toggleResponse{Success: true, ToggleResult: result})
}

// List returns a user's favorites.
func (h *Handler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = c.Query("user_id")
	}

	records, err := ListByUser(h.db.WithContext(c.Request.Context()), request.UserIDOrDefault(userID))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.JSONNoStore(c, http.StatusOK, records)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLessonIDRequired),
		errors.Is(err, ErrNegativeIndex),
		errors.Is(err, ErrItemDataRequired):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	default:
		_ = c.Error(err)
	}
}
