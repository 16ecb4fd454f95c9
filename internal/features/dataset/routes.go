package dataset

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the admin-only seeding endpoints.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, adminOnly []gin.HandlerFunc) {
	router.POST("/init-data", append(adminOnly, handler.Init)...)
	router.POST("/clear-data", append(adminOnly, handler.Clear)...)
}
