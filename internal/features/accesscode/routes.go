package accesscode

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches access code endpoints. Validation and redemption are
// public and throttled by limited.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, adminOnly []gin.HandlerFunc, limited gin.HandlerFunc) {
	codes := router.Group("/access-codes")
	{
		codes.POST("/generate", append(adminOnly, handler.Generate)...)
		codes.GET("", append(adminOnly, handler.List)...)
		codes.POST("/validate/:code", limited, handler.Validate)
		codes.POST("/redeem", limited, handler.Redeem)
	}
}
