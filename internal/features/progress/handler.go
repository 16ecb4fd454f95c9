package progress

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/pkg/request"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
)

// Handler processes progress HTTP requests.
type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHandler constructs a progress handler instance.
func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

type saveRequest struct {
	UserID         string `json:"userId" binding:"max=255"`
	LessonID       string `json:"lessonId" binding:"required,max=255"`
	Completed      bool   `json:"completed"`
	CompletedItems []int  `json:"completedItems" binding:"omitempty,dive,gte=0"`
}

// Save records progress for a lesson.
func (h *Handler) Save(c *gin.Context) {
	var req saveRequest
	if appErr := request.BindJSON(c, &req); appErr != nil {
		response.FromAppError(h.logger, c, appErr)
		return
	}

	modified, err := Save(h.db.WithContext(c.Request.Context()), SaveInput{
		UserID:         request.UserIDOrDefault(req.UserID),
		LessonID:       req.LessonID,
		Completed:      req.Completed,
		CompletedItems: req.CompletedItems,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.JSONNoStore(c, http.StatusOK, gin.H{"success": true, "modified": modified})
}

// List returns every progress record of a user.
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
	case errors.Is(err, ErrLessonIDRequired), errors.Is(err, ErrNegativeItem):
		response.ErrorWithLog(h.logger, c, http.StatusBadRequest, err.Error(), err)
	default:
		_ = c.Error(err)
	}
}
