package repository

import (
	"time"

	"apna_room_server/internal/model"

	"gorm.io/gorm"
)

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates the conversation repository.
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(conv *model.Conversation) error {
	if err := r.db.Create(conv).Error; err != nil {
		return wrapDBError(err, "create conversation")
	}
	return nil
}

func (r *conversationRepository) FindByUuid(uuid string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.Where("uuid = ?", uuid).First(&conv).Error; err != nil {
		return nil, wrapDBErrorf(err, "find conversation uuid=%s", uuid)
	}
	return &conv, nil
}

func (r *conversationRepository) FindByParticipants(userOneId, userTwoId string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.Where(
		"(participant1_id = ? AND participant2_id = ?) OR (participant1_id = ? AND participant2_id = ?)",
		userOneId, userTwoId, userTwoId, userOneId,
	).First(&conv).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find conversation between %s and %s", userOneId, userTwoId)
	}
	return &conv, nil
}

func (r *conversationRepository) FindByUserId(userId string) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.db.Where("participant1_id = ? OR participant2_id = ?", userId, userId).
		Order("last_message_at DESC").Find(&convs).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "find conversations user=%s", userId)
	}
	return convs, nil
}

func (r *conversationRepository) UpdateLastMessageAt(uuid string, at time.Time) error {
	err := r.db.Model(&model.Conversation{}).Where("uuid = ?", uuid).
		Update("last_message_at", at).Error
	if err != nil {
		return wrapDBErrorf(err, "update last_message_at uuid=%s", uuid)
	}
	return nil
}
