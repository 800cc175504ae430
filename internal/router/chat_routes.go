package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes wires the REST messaging endpoints.
func (rt *Router) RegisterChatRoutes(rg *gin.RouterGroup) {
	chatGroup := rg.Group("/chat")
	{
		chatGroup.POST("/conversations", rt.handlers.Chat.CreateConversation)
		chatGroup.GET("/conversations", rt.handlers.Chat.GetConversations)
		chatGroup.GET("/conversations/:conversation_id/messages", rt.handlers.Chat.GetMessages)
		chatGroup.POST("/conversations/:conversation_id/messages", rt.handlers.Chat.SendMessage)
		chatGroup.PUT("/conversations/:conversation_id/read", rt.handlers.Chat.MarkRead)
	}
}
