package respond

// ConversationRespond is one thread from the caller's point of view.
type ConversationRespond struct {
	Id            string `json:"id"`
	OtherUserId   string `json:"other_user_id"`
	OtherUserName string `json:"other_user_name"`
	ListingId     string `json:"listing_id,omitempty"`
	LastMessageAt string `json:"last_message_at,omitempty"`
}
