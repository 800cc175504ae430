package handler

import (
	"apna_room_server/internal/service"
	"apna_room_server/internal/service/chat"
)

// Handlers aggregates every handler for the router.
type Handlers struct {
	Auth  *AuthHandler
	Match *MatchHandler
	Chat  *ChatHandler
	Ws    *WsHandler
}

// NewHandlers builds the handler aggregate over the service layer and
// the realtime gateway.
func NewHandlers(svc *service.Services, gateway *chat.Gateway) *Handlers {
	return &Handlers{
		Auth:  NewAuthHandler(svc.Auth),
		Match: NewMatchHandler(svc.Match),
		Chat:  NewChatHandler(svc.Conversation),
		Ws:    NewWsHandler(gateway),
	}
}
