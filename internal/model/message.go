package model

import "gorm.io/gorm"

// Message types.
const (
	MessageText  = "text"
	MessageImage = "image"
	MessageFile  = "file"
)

// ValidMessageType reports whether t is one of the enumerated kinds.
func ValidMessageType(t string) bool {
	return t == MessageText || t == MessageImage || t == MessageFile
}

// Message is a chat message belonging to exactly one conversation.
// Immutable once created except for the Read flag.
type Message struct {
	gorm.Model

	// Uuid is a snowflake id; sent as a string on the wire.
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null"`

	// ConversationId references the owning conversation's uuid.
	ConversationId string `gorm:"column:conversation_id;index;type:char(20);not null"`

	// SenderId is always one of the conversation's two participants,
	// checked before persistence.
	SenderId string `gorm:"column:sender_id;index;type:char(20);not null"`

	Content string `gorm:"column:content;type:TEXT;not null"`

	// Type is one of text, image, file.
	Type string `gorm:"column:message_type;type:varchar(20);default:text"`

	// Read is set true only by a participant who is not the sender.
	Read bool `gorm:"column:read_status;not null;default:false"`
}

// TableName maps the struct to the messages table.
func (Message) TableName() string {
	return "messages"
}
