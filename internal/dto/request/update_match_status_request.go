package request

// UpdateMatchStatusRequest lets a lister respond to a match.
type UpdateMatchStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted rejected expired"`
}
