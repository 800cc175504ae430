package request

// SendMessageRequest posts a message over HTTP instead of the socket.
type SendMessageRequest struct {
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"message_type" binding:"omitempty,oneof=text image file"`
}
