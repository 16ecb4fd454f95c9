package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/langswap-server-go/pkg/apperrors"
)

// Envelope is the error body shared by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// JSON writes a success payload as-is. Endpoints return bare resources or small result objects.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK is shorthand for a 200 JSON payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created is a convenience helper for POST 201 responses.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// Message writes a {"message": ...} body plus any extra members.
func Message(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error writes an error response capturing the message and optional error payload.
func Error(c *gin.Context, status int, message string, detail interface{}) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

// ErrorWithLog writes an error response and logs the cause. 5xx are logged at Error, the rest at Warn.
func ErrorWithLog(logger *slog.Logger, c *gin.Context, status int, message string, err error) {
	if logger != nil && err != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, message,
			slog.Int("status", status),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}

	var detail interface{}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		detail = appErr.Detail()
	} else if err != nil && status < http.StatusInternalServerError {
		detail = err.Error()
	}

	Error(c, status, message, detail)
}

// FromAppError writes the response described by an AppError.
func FromAppError(logger *slog.Logger, c *gin.Context, appErr *apperrors.AppError) {
	ErrorWithLog(logger, c, appErr.StatusCode(), appErr.Message(), appErr)
}
