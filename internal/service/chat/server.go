package chat

import (
	"context"

	"go.uber.org/zap"

	"apna_room_server/internal/config"
	"apna_room_server/internal/dao/mysql/repository"
	myredis "apna_room_server/internal/dao/redis"
	"apna_room_server/internal/infrastructure/email"
)

// ServerConfig selects the broker mode and supplies the engine's
// collaborators.
type ServerConfig struct {
	Mode        string // "channel" (default) or "kafka"
	Kafka       *config.KafkaConfig
	ConvRepo    repository.ConversationRepository
	MsgRepo     repository.MessageRepository
	UserRepo    repository.UserRepository
	Cache       myredis.AsyncCacheService
	Mailer      email.Sender
	FrontendURL string
}

// Server aggregates the realtime components and manages their
// lifecycle. The gin layer only sees the Gateway.
type Server struct {
	Gateway *Gateway

	hub    *Hub
	broker Broker
	cancel context.CancelFunc
}

// NewServer builds the full realtime stack. Mode "kafka" shares events
// across processes through a topic; anything else stays in-process.
func NewServer(cfg ServerConfig) *Server {
	var broker Broker
	if cfg.Mode == "kafka" {
		broker = NewKafkaBroker(cfg.Kafka)
		zap.L().Info("realtime broker: kafka", zap.String("topic", cfg.Kafka.ChatTopic))
	} else {
		broker = NewChannelBroker()
		zap.L().Info("realtime broker: channel")
	}

	registry := NewRegistry()
	rooms := NewRooms()
	presence := NewPresenceStore(cfg.Cache)
	engine := NewEngine(
		cfg.ConvRepo, cfg.MsgRepo, cfg.UserRepo,
		registry, rooms, presence, cfg.Mailer, cfg.Cache, cfg.FrontendURL,
	)
	hub := NewHub(registry, rooms, engine, broker, presence)

	return &Server{
		Gateway: NewGateway(hub, broker, cfg.UserRepo),
		hub:     hub,
		broker:  broker,
	}
}

// Start launches the hub loop.
func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.hub.Run(ctx)
}

// Close stops the hub and releases broker resources.
func (s *Server) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	if err := s.broker.Close(); err != nil {
		zap.L().Error("broker close failed", zap.Error(err))
	}
	<-s.hub.Stopped()
}
