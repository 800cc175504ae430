package request

// SaveListingRequest adds a listing to the caller's favourites.
type SaveListingRequest struct {
	ListingId string `json:"listing_id" binding:"required"`
}
