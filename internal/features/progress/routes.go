package progress

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches progress endpoints.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	router.POST("/progress", handler.Save)
	router.GET("/progress", handler.List)
}
