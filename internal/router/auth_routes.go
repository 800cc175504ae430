package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes wires the unauthenticated account endpoints.
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", rt.handlers.Auth.Register)
		authGroup.POST("/login", rt.handlers.Auth.Login)
		authGroup.POST("/refresh", rt.handlers.Auth.RefreshToken)
	}
}
