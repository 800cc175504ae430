package request

// CreateConversationRequest opens (or returns) the thread between the
// caller and another user, optionally anchored to a listing.
type CreateConversationRequest struct {
	OtherUserId string `json:"other_user_id" binding:"required"`
	ListingId   string `json:"listing_id"`
}
