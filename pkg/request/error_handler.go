package request

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mo-amir99/langswap-server-go/pkg/apperrors"
	"github.com/mo-amir99/langswap-server-go/pkg/response"
)

// Handler returns a middleware that turns errors attached with c.Error into envelope responses.
func Handler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := errors.Join(errorsFromContext(c.Errors)...)
		if err == nil {
			return
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			response.FromAppError(logger, c, appErr)
			return
		}

		response.FromAppError(logger, c, Classify(err))
	}
}

func errorsFromContext(errs []*gin.Error) []error {
	list := make([]error, 0, len(errs))
	for _, item := range errs {
		if item != nil && item.Err != nil {
			list = append(list, item.Err)
		}
	}
	return list
}

// Classify maps an unexpected store or runtime error onto an AppError.
func Classify(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.New("Resource not found", http.StatusNotFound, apperrors.ErrNotFound, err)
	case strings.Contains(err.Error(), "invalid input syntax for type uuid"):
		return apperrors.New("Invalid ID format", http.StatusBadRequest, apperrors.ErrBadRequest, err)
	case isUnavailable(err):
		return apperrors.Unavailable(err)
	default:
		return apperrors.New("Internal server error", http.StatusInternalServerError, apperrors.ErrInternal, err)
	}
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	message := strings.ToLower(err.Error())
	for _, pattern := range []string{"connection refused", "connection reset", "broken pipe", "bad connection", "no such host", "i/o timeout", "database is closed"} {
		if strings.Contains(message, pattern) {
			return true
		}
	}
	return false
}
