package handler

import (
	"apna_room_server/internal/service/chat"

	"github.com/gin-gonic/gin"
)

// WsHandler exposes the websocket handshake endpoint.
type WsHandler struct {
	gateway *chat.Gateway
}

// NewWsHandler injects the realtime gateway.
func NewWsHandler(gateway *chat.Gateway) *WsHandler {
	return &WsHandler{gateway: gateway}
}

// Connect handles GET /ws. Authentication and the upgrade happen in
// the gateway.
func (h *WsHandler) Connect(c *gin.Context) {
	h.gateway.Handle(c)
}
