package respond

// SavedListingRespond is one favourite with listing context.
type SavedListingRespond struct {
	ListingId  string  `json:"listing_id"`
	Title      string  `json:"title,omitempty"`
	Location   string  `json:"location,omitempty"`
	RentAmount float64 `json:"rent_amount,omitempty"`
	Status     string  `json:"status,omitempty"`
	SavedAt    string  `json:"saved_at"`
}

// SavedListingListRespond pages favourites, newest first.
type SavedListingListRespond struct {
	Listings []SavedListingRespond `json:"listings"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	Limit    int                   `json:"limit"`
}
