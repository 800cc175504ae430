package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Conversation is a persistent two-party chat thread, optionally tied to a
// listing. The participant pair is unordered and unique; the two ids are
// always distinct.
type Conversation struct {
	gorm.Model

	// Uuid is the public conversation id, "C" + timestamped random string.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null"`

	Participant1Id string `gorm:"column:participant1_id;index;type:char(20);not null"`
	Participant2Id string `gorm:"column:participant2_id;index;type:char(20);not null"`

	// ListingId references the listing the chat started from; optional.
	ListingId string `gorm:"column:listing_id;type:char(20)"`

	// LastMessageAt orders conversation lists; bumped on every new message.
	LastMessageAt sql.NullTime `gorm:"column:last_message_at;index"`
}

// TableName maps the struct to the conversations table.
func (Conversation) TableName() string {
	return "conversations"
}

// HasParticipant reports whether userId is one of the two participants.
func (c *Conversation) HasParticipant(userId string) bool {
	return c.Participant1Id == userId || c.Participant2Id == userId
}

// OtherParticipant returns the participant that is not userId.
func (c *Conversation) OtherParticipant(userId string) string {
	if c.Participant1Id == userId {
		return c.Participant2Id
	}
	return c.Participant1Id
}
