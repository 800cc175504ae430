package model

import "gorm.io/gorm"

// SavedListing marks a listing as a favourite of a user. The (user, listing)
// pair is unique; saving twice is rejected.
type SavedListing struct {
	gorm.Model

	UserId    string `gorm:"column:user_id;index;type:char(20);not null;uniqueIndex:idx_user_listing"`
	ListingId string `gorm:"column:listing_id;index;type:char(20);not null;uniqueIndex:idx_user_listing"`
}

// TableName maps the struct to the saved_listings table.
func (SavedListing) TableName() string {
	return "saved_listings"
}
