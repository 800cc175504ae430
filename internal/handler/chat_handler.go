package handler

import (
	"apna_room_server/internal/dto/request"
	"apna_room_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the REST side of messaging.
type ChatHandler struct {
	svc service.ConversationService
}

// NewChatHandler injects the conversation service.
func NewChatHandler(svc service.ConversationService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// CreateConversation handles POST /api/chat/conversations.
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	var req request.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	resp, err := h.svc.CreateConversation(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// GetConversations handles GET /api/chat/conversations.
func (h *ChatHandler) GetConversations(c *gin.Context) {
	resp, err := h.svc.GetUserConversations(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// GetMessages handles GET /api/chat/conversations/:conversation_id/messages.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	resp, err := h.svc.GetConversationMessages(c.GetString("user_id"), c.Param("conversation_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// SendMessage handles POST /api/chat/conversations/:conversation_id/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	resp, err := h.svc.SendMessage(c.GetString("user_id"), c.Param("conversation_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, resp)
}

// MarkRead handles PUT /api/chat/conversations/:conversation_id/read.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.svc.MarkMessagesAsRead(c.GetString("user_id"), c.Param("conversation_id"), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
