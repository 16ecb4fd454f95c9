package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/langswap-server-go/pkg/response"
)

// Recovery recovers from panics, logs the stack and answers 500 with the request id.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)

				logger.Error("handler panicked",
					slog.Group("request",
						slog.String("id", requestID),
						slog.String("method", c.Request.Method),
						slog.String("route", c.FullPath()),
						slog.String("path", c.Request.URL.Path),
						slog.String("client_ip", c.ClientIP()),
					),
					slog.Any("panic", err),
					slog.String("stack", string(debug.Stack())),
				)

				response.Error(c, http.StatusInternalServerError, "Internal server error", gin.H{"requestId": requestID})
			}
		}()

		c.Next()
	}
}
