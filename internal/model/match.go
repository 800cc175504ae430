package model

import "gorm.io/gorm"

// Match statuses.
const (
	MatchPending  = "pending"
	MatchAccepted = "accepted"
	MatchRejected = "rejected"
	MatchExpired  = "expired"
)

// Match records a computed compatibility score between a seeker and a
// listing. The (seeker, listing) pair is unique; recomputation upserts the
// score in place.
type Match struct {
	gorm.Model

	SeekerId  string `gorm:"column:seeker_id;index;type:char(20);not null;uniqueIndex:idx_seeker_listing"`
	ListingId string `gorm:"column:listing_id;index;type:char(20);not null;uniqueIndex:idx_seeker_listing"`

	// CompatibilityScore is in [0,100], stored with two decimals.
	CompatibilityScore float64 `gorm:"column:compatibility_score;type:decimal(5,2);not null"`

	// Status is one of pending, accepted, rejected, expired.
	Status string `gorm:"column:status;type:varchar(20);default:pending"`
}

// TableName maps the struct to the matches table.
func (Match) TableName() string {
	return "matches"
}
