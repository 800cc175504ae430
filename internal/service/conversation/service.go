// Package conversation implements the HTTP side of messaging:
// conversation lifecycle, history access and REST message writes.
package conversation

import (
	"strconv"
	"time"

	"apna_room_server/internal/dao/mysql"
	"apna_room_server/internal/dto/request"
	"apna_room_server/internal/dto/respond"
	"apna_room_server/internal/model"
	"apna_room_server/pkg/errorx"
	"apna_room_server/pkg/util/random"
	"apna_room_server/pkg/util/snowflake"
)

type conversationService struct {
	repos *mysql.Repositories
}

// NewConversationService creates the service over the repository
// aggregate.
func NewConversationService(repos *mysql.Repositories) *conversationService {
	return &conversationService{repos: repos}
}

// CreateConversation opens the thread between the caller and another
// user. Idempotent: an existing thread for the unordered pair is
// returned unchanged, regardless of which side created it first.
func (s *conversationService) CreateConversation(callerId string, req request.CreateConversationRequest) (*respond.ConversationRespond, error) {
	if callerId == req.OtherUserId {
		return nil, errorx.New(errorx.CodeInvalidParam, "cannot start a conversation with yourself")
	}

	other, err := s.repos.User.FindByUuid(req.OtherUserId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "user not found")
		}
		return nil, err
	}

	if existing, err := s.repos.Conversation.FindByParticipants(callerId, req.OtherUserId); err == nil {
		return s.toRespond(existing, callerId, other.FullName), nil
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	if req.ListingId != "" {
		if _, err := s.repos.Listing.FindByUuid(req.ListingId); err != nil {
			return nil, err
		}
	}

	conv := model.Conversation{
		Uuid:           "C" + random.GetNowAndLenRandomString(11),
		Participant1Id: callerId,
		Participant2Id: req.OtherUserId,
		ListingId:      req.ListingId,
	}
	if err := s.repos.Conversation.Create(&conv); err != nil {
		return nil, err
	}
	return s.toRespond(&conv, callerId, other.FullName), nil
}

// GetUserConversations lists the caller's threads, most recent message
// first, with the other side's name resolved.
func (s *conversationService) GetUserConversations(userId string) ([]respond.ConversationRespond, error) {
	convs, err := s.repos.Conversation.FindByUserId(userId)
	if err != nil {
		return nil, err
	}

	out := make([]respond.ConversationRespond, 0, len(convs))
	for i := range convs {
		conv := &convs[i]
		otherName := ""
		if other, err := s.repos.User.FindByUuid(conv.OtherParticipant(userId)); err == nil {
			otherName = other.FullName
		}
		out = append(out, *s.toRespond(conv, userId, otherName))
	}
	return out, nil
}

// loadFor fetches a conversation for a participant. A missing thread
// and a thread the caller is not part of both come back as not found,
// so outsiders cannot probe which conversation ids exist.
func (s *conversationService) loadFor(userId, conversationId string) (*model.Conversation, error) {
	conv, err := s.repos.Conversation.FindByUuid(conversationId)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userId) {
		return nil, errorx.New(errorx.CodeNotFound, "conversation not found")
	}
	return conv, nil
}

// GetConversationMessages returns the full history, oldest first.
func (s *conversationService) GetConversationMessages(userId, conversationId string) ([]respond.MessageRespond, error) {
	conv, err := s.loadFor(userId, conversationId)
	if err != nil {
		return nil, err
	}

	messages, err := s.repos.Message.FindByConversationId(conv.Uuid)
	if err != nil {
		return nil, err
	}

	out := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		m := &messages[i]
		out = append(out, respond.MessageRespond{
			Id:             strconv.FormatInt(m.Uuid, 10),
			ConversationId: m.ConversationId,
			SenderId:       m.SenderId,
			Content:        m.Content,
			MessageType:    m.Type,
			Read:           m.Read,
			CreatedAt:      m.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// SendMessage is the REST write path. It persists and bumps recency
// like the socket path but leaves realtime fan-out to connected
// clients' own polling or socket traffic.
func (s *conversationService) SendMessage(userId, conversationId string, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	conv, err := s.loadFor(userId, conversationId)
	if err != nil {
		return nil, err
	}

	msgType := req.MessageType
	if msgType == "" {
		msgType = model.MessageText
	}

	message := model.Message{
		Uuid:           snowflake.GenerateID(),
		ConversationId: conv.Uuid,
		SenderId:       userId,
		Content:        req.Content,
		Type:           msgType,
	}
	if err := s.repos.Message.Create(&message); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.repos.Conversation.UpdateLastMessageAt(conv.Uuid, now); err != nil {
		return nil, err
	}

	return &respond.MessageRespond{
		Id:             strconv.FormatInt(message.Uuid, 10),
		ConversationId: conv.Uuid,
		SenderId:       userId,
		Content:        message.Content,
		MessageType:    message.Type,
		CreatedAt:      now.Format(time.RFC3339),
	}, nil
}

// MarkMessagesAsRead flips read flags. With explicit ids the update is
// scoped to this conversation; with none, everything unread from the
// other participant is marked. Idempotent either way.
func (s *conversationService) MarkMessagesAsRead(userId, conversationId string, req request.MarkReadRequest) error {
	conv, err := s.loadFor(userId, conversationId)
	if err != nil {
		return err
	}

	if len(req.MessageIds) == 0 {
		return s.repos.Message.MarkAllReadFromOther(conv.Uuid, userId)
	}

	ids := make([]int64, 0, len(req.MessageIds))
	for _, raw := range req.MessageIds {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errorx.Newf(errorx.CodeInvalidParam, "invalid message id %q", raw)
		}
		ids = append(ids, id)
	}
	return s.repos.Message.MarkRead(conv.Uuid, ids)
}

func (s *conversationService) toRespond(conv *model.Conversation, userId, otherName string) *respond.ConversationRespond {
	r := &respond.ConversationRespond{
		Id:            conv.Uuid,
		OtherUserId:   conv.OtherParticipant(userId),
		OtherUserName: otherName,
		ListingId:     conv.ListingId,
	}
	if conv.LastMessageAt.Valid {
		r.LastMessageAt = conv.LastMessageAt.Time.Format(time.RFC3339)
	}
	return r
}
