package subscription

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches plan and subscription endpoints.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authenticated []gin.HandlerFunc) {
	router.GET("/plans", handler.Plans)
	router.POST("/subscribe", append(authenticated, handler.Subscribe)...)
	router.GET("/my-subscription", append(authenticated, handler.MySubscription)...)
}
