package respond

// MatchRespond is one match row enriched with listing context.
type MatchRespond struct {
	Id                 uint    `json:"id"`
	SeekerId           string  `json:"seeker_id"`
	ListingId          string  `json:"listing_id"`
	ListingTitle       string  `json:"listing_title,omitempty"`
	ListingLocation    string  `json:"listing_location,omitempty"`
	RentAmount         float64 `json:"rent_amount,omitempty"`
	CompatibilityScore float64 `json:"compatibility_score"`
	Status             string  `json:"status"`
	UpdatedAt          string  `json:"updated_at"`
}

// MatchListRespond pages match rows, best score first.
type MatchListRespond struct {
	Matches []MatchRespond `json:"matches"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}
