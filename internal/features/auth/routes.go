package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches authentication endpoints. limited throttles credential submission.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, limited gin.HandlerFunc, authenticated []gin.HandlerFunc) {
	router.POST("/register", limited, handler.Register)
	router.POST("/login", limited, handler.Login)
	router.GET("/me", append(authenticated, handler.Me)...)
}
