// Package chat implements the realtime messaging core: the websocket
// gateway, the single-writer hub loop, rooms and presence, and the
// pluggable broker that carries client events between processes.
package chat

import (
	"encoding/json"
	"unicode/utf8"

	"apna_room_server/pkg/errorx"
)

// Client-to-server event types.
const (
	EventJoinConversation  = "joinConversation"
	EventLeaveConversation = "leaveConversation"
	EventTyping            = "typing"
	EventSendMessage       = "sendMessage"
	EventMarkAsRead        = "markAsRead"
	EventUpdateStatus      = "updateStatus"
)

// Server-to-client event types.
const (
	EventNewMessage             = "newMessage"
	EventNewMessageNotification = "newMessageNotification"
	EventUserTyping             = "userTyping"
	EventMessagesRead           = "messagesRead"
	EventUserStatusUpdate       = "userStatusUpdate"
	EventUserOffline            = "userOffline"
	EventError                  = "error"
)

// ClientEvent is the wire shape of everything a client sends.
type ClientEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinConversationPayload carries the room to join or leave.
type JoinConversationPayload struct {
	ConversationId string `json:"conversationId"`
}

// TypingPayload is the ephemeral typing indicator.
type TypingPayload struct {
	ConversationId string `json:"conversationId"`
	IsTyping       bool   `json:"isTyping"`
}

// SendMessagePayload carries one outbound chat message.
type SendMessagePayload struct {
	ConversationId string `json:"conversationId"`
	Content        string `json:"content"`
	MessageType    string `json:"messageType"`
}

// MarkAsReadPayload identifies messages to flip to read. Ids are
// snowflake values serialized as strings.
type MarkAsReadPayload struct {
	ConversationId string   `json:"conversationId"`
	MessageIds     []string `json:"messageIds"`
}

// UpdateStatusPayload carries a manual presence change.
type UpdateStatusPayload struct {
	Status string `json:"status"`
}

// ServerEvent is the wire shape of everything the server pushes.
type ServerEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Encode serializes a server event for the write pump.
func (e ServerEvent) Encode() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return []byte(`{"type":"error","payload":{"message":"internal encoding error"}}`)
	}
	return data
}

// ErrorPayload goes only to the session that caused the failure.
type ErrorPayload struct {
	Message string `json:"message"`
}

// DecodeClientEvent parses and validates a raw frame at the boundary,
// so the hub and engine only ever see well-formed events.
func DecodeClientEvent(data []byte) (*ClientEvent, error) {
	var event ClientEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeInvalidParam, "malformed event frame")
	}
	if !utf8.Valid(data) {
		return nil, errorx.New(errorx.CodeInvalidParam, "event frame is not valid utf-8")
	}

	switch event.Type {
	case EventJoinConversation, EventLeaveConversation:
		var p JoinConversationPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || p.ConversationId == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "conversationId is required")
		}
	case EventTyping:
		var p TypingPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || p.ConversationId == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "conversationId is required")
		}
	case EventSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return nil, errorx.New(errorx.CodeInvalidParam, "malformed sendMessage payload")
		}
		if p.ConversationId == "" || p.Content == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "conversationId and content are required")
		}
	case EventMarkAsRead:
		var p MarkAsReadPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || p.ConversationId == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "conversationId is required")
		}
	case EventUpdateStatus:
		// Status is an opaque token chosen by the client; only presence
		// of some value is enforced.
		var p UpdateStatusPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || p.Status == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "status is required")
		}
	default:
		return nil, errorx.Newf(errorx.CodeInvalidParam, "unknown event type %q", event.Type)
	}

	return &event, nil
}
