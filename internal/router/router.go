// Package router maps URLs onto handlers and applies route-group
// middleware.
package router

import (
	"github.com/gin-gonic/gin"

	"apna_room_server/internal/handler"
	"apna_room_server/internal/infrastructure/middleware"
)

// Router registers all route groups over the handler aggregate.
type Router struct {
	handlers *handler.Handlers
}

// NewRouter injects the handlers.
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes wires every group. /api/auth and /ws manage their own
// authentication; everything else sits behind the JWT middleware.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r)

	api := r.Group("/api", middleware.JWTAuth())
	rt.RegisterMatchRoutes(api)
	rt.RegisterChatRoutes(api)

	rt.RegisterWebSocketRoutes(r)
}
