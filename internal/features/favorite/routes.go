package favorite

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches favorites endpoints.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	router.POST("/favorites", handler.Toggle)
	router.GET("/favorites", handler.List)
}
