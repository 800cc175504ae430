package chat

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"apna_room_server/pkg/constants"
)

// Hub is the single writer over the registry and the room table. All
// mutation flows through its Run loop: connects, disconnects and every
// client event, handled one at a time. That serialization is what lets
// the registry and rooms stay lock-free and keeps effect ordering
// deterministic per event.
type Hub struct {
	registry *Registry
	rooms    *Rooms
	engine   *Engine
	broker   Broker
	presence PresenceStore

	register   chan *Session
	unregister chan *Session
	stopped    chan struct{}
}

// NewHub wires the loop's collaborators.
func NewHub(registry *Registry, rooms *Rooms, engine *Engine, broker Broker, presence PresenceStore) *Hub {
	return &Hub{
		registry:   registry,
		rooms:      rooms,
		engine:     engine,
		broker:     broker,
		presence:   presence,
		register:   make(chan *Session, constants.CHANNEL_SIZE),
		unregister: make(chan *Session, constants.CHANNEL_SIZE),
		stopped:    make(chan struct{}),
	}
}

// Register queues a freshly authenticated session for the loop.
func (h *Hub) Register(session *Session) {
	h.register <- session
}

// Unregister queues a disconnect for the loop.
func (h *Hub) Unregister(session *Session) {
	h.unregister <- session
}

// Run drives the loop until ctx is cancelled or the broker stream
// closes. Call it from exactly one goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	stream := h.broker.Consume()
	for {
		select {
		case <-ctx.Done():
			return

		case session := <-h.register:
			h.handleRegister(ctx, session)

		case session := <-h.unregister:
			h.handleUnregister(ctx, session)

		case env, ok := <-stream:
			if !ok {
				return
			}
			h.dispatch(ctx, env)
		}
	}
}

// Stopped closes once Run has returned.
func (h *Hub) Stopped() <-chan struct{} {
	return h.stopped
}

// handleRegister installs the session, closing any prior connection
// for the same user. Last connect wins.
func (h *Hub) handleRegister(ctx context.Context, session *Session) {
	if prior := h.registry.Add(session); prior != nil {
		h.rooms.LeaveAll(prior)
		prior.Close()
		zap.L().Info("replaced existing connection", zap.String("user_id", session.UserId))
	}
	h.rooms.Join(UserRoom(session.UserId), session)

	if err := h.presence.SetStatus(ctx, session.UserId, "online"); err != nil {
		zap.L().Warn("online presence write failed", zap.String("user_id", session.UserId), zap.Error(err))
	}
	zap.L().Info("session connected",
		zap.String("user_id", session.UserId), zap.Int("online", h.registry.Len()))
}

// handleUnregister tears the session down. A stale session that was
// already replaced only gets closed; the active user keeps their newer
// connection and no offline event fires.
func (h *Hub) handleUnregister(ctx context.Context, session *Session) {
	if !h.registry.Remove(session) {
		session.Close()
		return
	}
	h.rooms.LeaveAll(session)
	session.Close()

	if err := h.presence.SetStatus(ctx, session.UserId, "offline"); err != nil {
		zap.L().Warn("offline presence write failed", zap.String("user_id", session.UserId), zap.Error(err))
	}

	gone := StatusPayload{UserId: session.UserId, Status: "offline", LastSeen: time.Now().UTC()}
	h.registry.Each(func(s *Session) {
		s.Send(ServerEvent{Type: EventUserOffline, Payload: gone})
	})
	zap.L().Info("session disconnected",
		zap.String("user_id", session.UserId), zap.Int("online", h.registry.Len()))
}

// dispatch decodes one envelope and runs the matching engine handler
// to completion.
func (h *Hub) dispatch(ctx context.Context, env Envelope) {
	session := h.registry.Get(env.UserId)

	event, err := DecodeClientEvent(env.Event)
	if err != nil {
		zap.L().Warn("rejected client event", zap.String("user_id", env.UserId), zap.Error(err))
		if session != nil {
			session.Send(ServerEvent{Type: EventError, Payload: ErrorPayload{Message: err.Error()}})
		}
		return
	}

	switch event.Type {
	case EventJoinConversation:
		var p JoinConversationPayload
		mustUnmarshal(event.Payload, &p)
		h.engine.HandleJoinConversation(session, env.UserId, p)
	case EventLeaveConversation:
		var p JoinConversationPayload
		mustUnmarshal(event.Payload, &p)
		h.engine.HandleLeaveConversation(session, p)
	case EventTyping:
		var p TypingPayload
		mustUnmarshal(event.Payload, &p)
		h.engine.HandleTyping(session, env.UserId, p)
	case EventSendMessage:
		var p SendMessagePayload
		mustUnmarshal(event.Payload, &p)
		h.engine.HandleSendMessage(ctx, session, env.UserId, p)
	case EventMarkAsRead:
		var p MarkAsReadPayload
		mustUnmarshal(event.Payload, &p)
		h.engine.HandleMarkAsRead(session, env.UserId, p)
	case EventUpdateStatus:
		var p UpdateStatusPayload
		mustUnmarshal(event.Payload, &p)
		h.engine.HandleUpdateStatus(ctx, session, env.UserId, p)
	}
}

// mustUnmarshal decodes a payload already validated by
// DecodeClientEvent.
func mustUnmarshal(data json.RawMessage, v any) {
	if err := json.Unmarshal(data, v); err != nil {
		zap.L().Error("payload re-decode failed", zap.Error(err))
	}
}
