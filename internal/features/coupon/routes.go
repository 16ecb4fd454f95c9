package coupon

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches coupon endpoints.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, adminOnly, authenticated []gin.HandlerFunc) {
	coupons := router.Group("/coupons")
	{
		coupons.POST("", append(adminOnly, handler.Create)...)
		coupons.GET("", append(adminOnly, handler.List)...)
		coupons.POST("/deactivate/:code", append(adminOnly, handler.Deactivate)...)
		coupons.POST("/validate/:code", append(authenticated, handler.Validate)...)
	}
}
