package request

// MarkReadRequest marks messages as read. With no ids, everything
// unread from the other participant is marked.
type MarkReadRequest struct {
	MessageIds []string `json:"message_ids"`
}
