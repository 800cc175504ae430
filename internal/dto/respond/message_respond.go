package respond

// MessageRespond is one message in a history listing. Id is the
// snowflake value as a string.
type MessageRespond struct {
	Id             string `json:"id"`
	ConversationId string `json:"conversation_id"`
	SenderId       string `json:"sender_id"`
	Content        string `json:"content"`
	MessageType    string `json:"message_type"`
	Read           bool   `json:"read"`
	CreatedAt      string `json:"created_at"`
}
