package service

import (
	"apna_room_server/internal/dao/mysql"
	"apna_room_server/internal/service/auth"
	"apna_room_server/internal/service/conversation"
	"apna_room_server/internal/service/match"
)

// Services aggregates the business layer for injection into handlers.
type Services struct {
	Auth         AuthService
	Match        MatchService
	Conversation ConversationService
}

// NewServices builds every service over the repository aggregate.
func NewServices(repos *mysql.Repositories) *Services {
	return &Services{
		Auth:         auth.NewAuthService(repos),
		Match:        match.NewMatchService(repos),
		Conversation: conversation.NewConversationService(repos),
	}
}
