package chat

import (
	"context"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"apna_room_server/pkg/constants"
)

// Session is one authenticated websocket connection. Outbound frames go
// through a buffered channel drained by the write pump, so broadcast
// paths never block on a slow client.
type Session struct {
	UserId   string
	FullName string

	conn     *websocket.Conn
	outbound chan []byte
	done     chan struct{}
}

// NewSession wraps an upgraded connection. conn may be nil in tests,
// in which case callers read Outbound directly.
func NewSession(userId, fullName string, conn *websocket.Conn) *Session {
	return &Session{
		UserId:   userId,
		FullName: fullName,
		conn:     conn,
		outbound: make(chan []byte, constants.SESSION_SEND_BUFFER),
		done:     make(chan struct{}),
	}
}

// Send queues a server event for delivery. A full buffer drops the
// frame rather than stalling the hub.
func (s *Session) Send(event ServerEvent) {
	select {
	case <-s.done:
	case s.outbound <- event.Encode():
	default:
		zap.L().Warn("session send buffer full, dropping frame",
			zap.String("user_id", s.UserId), zap.String("event", event.Type))
	}
}

// Outbound exposes the delivery channel to the write pump and to tests.
func (s *Session) Outbound() <-chan []byte {
	return s.outbound
}

// Close stops the pumps and the underlying connection. Safe to call
// more than once via the hub's single-writer discipline.
func (s *Session) Close() {
	select {
	case <-s.done:
		return
	default:
	}
	close(s.done)
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			zap.L().Debug("session close", zap.Error(err))
		}
	}
}

// readPump reads frames off the wire and publishes them through the
// broker. It exits on any read error, which triggers deregistration.
func (s *Session) readPump(ctx context.Context, broker Broker, unregister chan<- *Session) {
	defer func() {
		unregister <- s
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("websocket read failed", zap.String("user_id", s.UserId), zap.Error(err))
			}
			return
		}
		if err := broker.Publish(ctx, Envelope{UserId: s.UserId, Event: data}); err != nil {
			zap.L().Error("publish event failed", zap.String("user_id", s.UserId), zap.Error(err))
			s.Send(ServerEvent{Type: EventError, Payload: ErrorPayload{Message: "server busy, try again later"}})
		}
	}
}

// writePump drains the outbound buffer onto the wire until the session
// closes or a write fails.
func (s *Session) writePump() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.outbound:
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				zap.L().Debug("websocket write failed", zap.String("user_id", s.UserId), zap.Error(err))
				return
			}
		}
	}
}
