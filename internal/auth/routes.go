package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all auth-related routes
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, middleware *Middleware) {
	auth := router.Group("/auth")
	{
		auth.POST("/signin", handler.Signin)
		auth.POST("/refresh", handler.Refresh)
		auth.POST("/logout", handler.Logout)

		// Redirect OAuth flow
		auth.GET("/login/google", handler.Login)
		auth.GET("/callback/google", handler.Callback)

		protected := auth.Group("")
		protected.Use(middleware.RequireUser())
		{
			protected.GET("/me", handler.Me)
		}
	}
}
