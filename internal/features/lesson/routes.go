package lesson

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the public catalog endpoints.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	router.GET("/", handler.Root)

	lessons := router.Group("/lessons")
	{
		lessons.GET("", handler.List)
		lessons.GET("/:lessonId", handler.GetByID)
	}
}
