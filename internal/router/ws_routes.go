package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes wires the realtime handshake. The gateway
// authenticates the token itself, before upgrading.
func (rt *Router) RegisterWebSocketRoutes(r *gin.Engine) {
	r.GET("/ws", rt.handlers.Ws.Connect)
}
