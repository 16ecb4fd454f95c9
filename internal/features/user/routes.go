package user

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches staff administration endpoints. Every route is admin only.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, adminOnly []gin.HandlerFunc) {
	staff := router.Group("/staff")
	{
		staff.POST("", append(adminOnly, handler.CreateStaff)...)
		staff.GET("", append(adminOnly, handler.ListStaff)...)
		staff.DELETE("/:userId", append(adminOnly, handler.DeleteStaff)...)
	}

	router.PUT("/users/:userId/status", append(adminOnly, handler.UpdateStatus)...)
}
