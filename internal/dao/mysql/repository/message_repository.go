package repository

import (
	"apna_room_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates the message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "create message")
	}
	return nil
}

func (r *messageRepository) FindByConversationId(conversationId string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.Where("conversation_id = ?", conversationId).
		Order("created_at ASC, uuid ASC").Find(&messages).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find messages conversation=%s", conversationId)
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(conversationId string, messageIds []int64) error {
	if len(messageIds) == 0 {
		return nil
	}
	// Scoping by conversation_id silently drops ids from other conversations.
	err := r.db.Model(&model.Message{}).
		Where("conversation_id = ? AND uuid IN ?", conversationId, messageIds).
		Update("read_status", true).Error
	if err != nil {
		return wrapDBErrorf(err, "mark messages read conversation=%s", conversationId)
	}
	return nil
}

func (r *messageRepository) MarkAllReadFromOther(conversationId, readerId string) error {
	err := r.db.Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_status = ?", conversationId, readerId, false).
		Update("read_status", true).Error
	if err != nil {
		return wrapDBErrorf(err, "mark all read conversation=%s reader=%s", conversationId, readerId)
	}
	return nil
}
