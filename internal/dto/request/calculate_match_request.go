package request

// CalculateMatchRequest scores the calling seeker against a listing.
type CalculateMatchRequest struct {
	ListingId string `json:"listing_id" binding:"required"`
}
