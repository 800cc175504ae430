package chat

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"apna_room_server/internal/dao/mysql/repository"
	"apna_room_server/internal/infrastructure/email"
	"apna_room_server/internal/model"
	"apna_room_server/pkg/constants"
	"apna_room_server/pkg/errorx"
	"apna_room_server/pkg/util/snowflake"
)

// TaskSubmitter queues a fire-and-forget action. AsyncCacheService
// satisfies it, so the engine shares the cache worker pool.
type TaskSubmitter interface {
	SubmitTask(action func())
}

// MessagePayload is the wire form of a persisted message. Ids travel
// as strings because snowflake values overflow JSON number precision.
type MessagePayload struct {
	Id             string    `json:"id"`
	ConversationId string    `json:"conversationId"`
	SenderId       string    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	Content        string    `json:"content"`
	MessageType    string    `json:"messageType"`
	Read           bool      `json:"read"`
	Timestamp      time.Time `json:"timestamp"`
}

// NotificationPayload goes to the recipient's personal room. Content is
// truncated to the preview length.
type NotificationPayload struct {
	ConversationId string    `json:"conversationId"`
	SenderName     string    `json:"senderName"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

// MessagesReadPayload announces read receipts to the conversation room.
type MessagesReadPayload struct {
	ConversationId string    `json:"conversationId"`
	MessageIds     []string  `json:"messageIds"`
	ReadBy         string    `json:"readBy"`
	Timestamp      time.Time `json:"timestamp"`
}

// UserTypingPayload relays the typing indicator.
type UserTypingPayload struct {
	ConversationId string `json:"conversationId"`
	UserId         string `json:"userId"`
	UserName       string `json:"userName"`
	IsTyping       bool   `json:"isTyping"`
}

// StatusPayload announces presence changes.
type StatusPayload struct {
	UserId   string    `json:"userId"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"lastSeen"`
}

// Engine executes client events against storage and fans results out
// through rooms. All handlers run on the hub goroutine, one event at a
// time, so effect ordering within a handler is the delivery order.
type Engine struct {
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository

	registry *Registry
	rooms    *Rooms
	presence PresenceStore
	mailer   email.Sender
	tasks    TaskSubmitter

	frontendURL string
}

// NewEngine wires the engine's collaborators.
func NewEngine(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	registry *Registry,
	rooms *Rooms,
	presence PresenceStore,
	mailer email.Sender,
	tasks TaskSubmitter,
	frontendURL string,
) *Engine {
	return &Engine{
		convRepo:    convRepo,
		msgRepo:     msgRepo,
		userRepo:    userRepo,
		registry:    registry,
		rooms:       rooms,
		presence:    presence,
		mailer:      mailer,
		tasks:       tasks,
		frontendURL: frontendURL,
	}
}

// sendError reports a failure to the caller only. A nil session means
// the event came from another process and there is nobody to tell.
func (e *Engine) sendError(session *Session, msg string) {
	if session == nil {
		return
	}
	session.Send(ServerEvent{Type: EventError, Payload: ErrorPayload{Message: msg}})
}

// displayName resolves the acting user's name, preferring the local
// session. Events arriving from another process carry no session, so
// those fall back to a row lookup.
func (e *Engine) displayName(session *Session, userId string) string {
	if session != nil && session.FullName != "" {
		return session.FullName
	}
	if user, err := e.userRepo.FindByUuid(userId); err == nil {
		return user.FullName
	}
	return ""
}

// loadConversationFor fetches the conversation and verifies membership.
func (e *Engine) loadConversationFor(userId, conversationId string) (*model.Conversation, error) {
	conv, err := e.convRepo.FindByUuid(conversationId)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userId) {
		return nil, errorx.New(errorx.CodeForbidden, "not a participant in this conversation")
	}
	return conv, nil
}

// HandleJoinConversation puts the caller's session into the room after
// a membership check.
func (e *Engine) HandleJoinConversation(session *Session, userId string, p JoinConversationPayload) {
	if _, err := e.loadConversationFor(userId, p.ConversationId); err != nil {
		zap.L().Warn("join conversation rejected",
			zap.String("user_id", userId), zap.String("conversation_id", p.ConversationId), zap.Error(err))
		e.sendError(session, "cannot join conversation")
		return
	}
	if session != nil {
		e.rooms.Join(ConversationRoom(p.ConversationId), session)
	}
}

// HandleLeaveConversation removes the caller from the room. No
// membership check: leaving a room you are not in is a no-op.
func (e *Engine) HandleLeaveConversation(session *Session, p JoinConversationPayload) {
	if session != nil {
		e.rooms.Leave(ConversationRoom(p.ConversationId), session)
	}
}

// HandleSendMessage persists the message and fans it out. Effect order
// is fixed: insert, bump conversation recency, room broadcast, personal
// notification, then the offline email check. Failures after the
// insert are logged and never roll the message back.
func (e *Engine) HandleSendMessage(ctx context.Context, session *Session, userId string, p SendMessagePayload) {
	conv, err := e.loadConversationFor(userId, p.ConversationId)
	if err != nil {
		e.sendError(session, "cannot send message to this conversation")
		return
	}

	msgType := p.MessageType
	if msgType == "" {
		msgType = model.MessageText
	}
	if !model.ValidMessageType(msgType) {
		e.sendError(session, "invalid message type")
		return
	}

	message := model.Message{
		Uuid:           snowflake.GenerateID(),
		ConversationId: conv.Uuid,
		SenderId:       userId,
		Content:        p.Content,
		Type:           msgType,
	}
	if err := e.msgRepo.Create(&message); err != nil {
		zap.L().Error("persist message failed", zap.String("user_id", userId), zap.Error(err))
		e.sendError(session, "message could not be saved")
		return
	}

	// The bump uses the persisted row's timestamp, so list ordering and
	// the broadcast agree on when the message happened.
	if err := e.convRepo.UpdateLastMessageAt(conv.Uuid, message.CreatedAt); err != nil {
		zap.L().Error("update conversation recency failed",
			zap.String("conversation_id", conv.Uuid), zap.Error(err))
	}

	senderName := e.displayName(session, userId)

	payload := MessagePayload{
		Id:             strconv.FormatInt(message.Uuid, 10),
		ConversationId: conv.Uuid,
		SenderId:       userId,
		SenderName:     senderName,
		Content:        message.Content,
		MessageType:    message.Type,
		Timestamp:      message.CreatedAt,
	}
	e.rooms.Broadcast(ConversationRoom(conv.Uuid), ServerEvent{Type: EventNewMessage, Payload: payload}, nil)

	recipientId := conv.OtherParticipant(userId)
	notification := NotificationPayload{
		ConversationId: conv.Uuid,
		SenderName:     senderName,
		Content:        previewOf(message.Content),
		Timestamp:      message.CreatedAt,
	}
	e.rooms.Broadcast(UserRoom(recipientId), ServerEvent{Type: EventNewMessageNotification, Payload: notification}, nil)

	if e.registry.Get(recipientId) == nil {
		e.notifyByEmail(recipientId, conv.Uuid, senderName, notification.Content)
	}
}

// notifyByEmail queues a best-effort mail to an offline recipient.
func (e *Engine) notifyByEmail(recipientId, conversationId, senderName, preview string) {
	recipient, err := e.userRepo.FindByUuid(recipientId)
	if err != nil {
		zap.L().Warn("offline notification skipped, recipient lookup failed",
			zap.String("user_id", recipientId), zap.Error(err))
		return
	}
	msg := email.Message{
		To:       recipient.Email,
		Template: email.TemplateNewMessage,
		Data: map[string]any{
			"senderName": senderName,
			"preview":    preview,
			"url":        e.frontendURL + "/chat/" + conversationId,
		},
	}
	e.tasks.SubmitTask(func() {
		if err := e.mailer.Send(msg); err != nil {
			zap.L().Warn("offline notification email failed",
				zap.String("to", recipient.Email), zap.Error(err))
		}
	})
}

// previewOf truncates content to the notification preview length,
// counting runes so multibyte text is never split.
func previewOf(content string) string {
	runes := []rune(content)
	if len(runes) <= constants.MESSAGE_PREVIEW_LEN {
		return content
	}
	return string(runes[:constants.MESSAGE_PREVIEW_LEN]) + "..."
}

// HandleMarkAsRead flips read flags and announces the receipt to the
// rest of the room. With no explicit ids, everything unread from the
// other side is marked. Ids from other conversations are ignored by
// the scoped update. The broadcast fires even when nothing changed,
// which keeps the operation idempotent for clients.
func (e *Engine) HandleMarkAsRead(session *Session, userId string, p MarkAsReadPayload) {
	if _, err := e.loadConversationFor(userId, p.ConversationId); err != nil {
		e.sendError(session, "cannot mark messages in this conversation")
		return
	}

	if len(p.MessageIds) > 0 {
		ids := make([]int64, 0, len(p.MessageIds))
		for _, raw := range p.MessageIds {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				e.sendError(session, "invalid message id")
				return
			}
			ids = append(ids, id)
		}
		if err := e.msgRepo.MarkRead(p.ConversationId, ids); err != nil {
			zap.L().Error("mark read failed", zap.String("conversation_id", p.ConversationId), zap.Error(err))
			e.sendError(session, "could not mark messages as read")
			return
		}
	} else {
		if err := e.msgRepo.MarkAllReadFromOther(p.ConversationId, userId); err != nil {
			zap.L().Error("mark all read failed", zap.String("conversation_id", p.ConversationId), zap.Error(err))
			e.sendError(session, "could not mark messages as read")
			return
		}
	}

	receipt := MessagesReadPayload{
		ConversationId: p.ConversationId,
		MessageIds:     p.MessageIds,
		ReadBy:         userId,
		Timestamp:      time.Now().UTC(),
	}
	e.rooms.Broadcast(ConversationRoom(p.ConversationId), ServerEvent{Type: EventMessagesRead, Payload: receipt}, session)
}

// HandleTyping relays the indicator to everyone else in the room. It
// is ephemeral: nothing is persisted and no membership query is made,
// since only joined sessions can be in the room anyway.
func (e *Engine) HandleTyping(session *Session, userId string, p TypingPayload) {
	indicator := UserTypingPayload{
		ConversationId: p.ConversationId,
		UserId:         userId,
		UserName:       e.displayName(session, userId),
		IsTyping:       p.IsTyping,
	}
	e.rooms.Broadcast(ConversationRoom(p.ConversationId), ServerEvent{Type: EventUserTyping, Payload: indicator}, session)
}

// HandleUpdateStatus persists the manual presence change and tells
// every other connected user.
func (e *Engine) HandleUpdateStatus(ctx context.Context, session *Session, userId string, p UpdateStatusPayload) {
	if err := e.presence.SetStatus(ctx, userId, p.Status); err != nil {
		zap.L().Warn("presence update failed", zap.String("user_id", userId), zap.Error(err))
	}
	update := StatusPayload{UserId: userId, Status: p.Status, LastSeen: time.Now().UTC()}
	e.registry.Each(func(s *Session) {
		if s != session {
			s.Send(ServerEvent{Type: EventUserStatusUpdate, Payload: update})
		}
	})
}
