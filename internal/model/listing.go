package model

import "gorm.io/gorm"

// Room types.
const (
	RoomTypePrivate = "private"
	RoomTypeShared  = "shared"
	RoomTypeStudio  = "studio"
	RoomType1BHK    = "1bhk"
	RoomType2BHK    = "2bhk"
	RoomType3BHK    = "3bhk"
)

// Gender preferences (listings and seeker preferences share the values).
const (
	GenderAny    = "any"
	GenderMale   = "male"
	GenderFemale = "female"
)

// Listing statuses.
const (
	ListingActive   = "active"
	ListingInactive = "inactive"
	ListingRented   = "rented"
)

// Listing is a room advertised by a lister. Read-only input to scoring.
type Listing struct {
	gorm.Model

	// Uuid is the public listing id, "L" + timestamped random string.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null"`

	// ListerId references the owning user's uuid.
	ListerId string `gorm:"column:lister_id;index;type:char(20);not null"`

	Title       string  `gorm:"column:title;type:varchar(100);not null"`
	Description string  `gorm:"column:description;type:TEXT"`
	Location    string  `gorm:"column:location;type:varchar(200);not null"`
	RentAmount  float64 `gorm:"column:rent_amount;type:decimal(10,2);not null"`

	// RoomType is one of private, shared, studio, 1bhk, 2bhk, 3bhk.
	RoomType string `gorm:"column:room_type;type:varchar(50);not null"`

	// GenderPreference is one of any, male, female; empty means unspecified.
	GenderPreference string `gorm:"column:gender_preference;type:varchar(20)"`

	// Status is one of active, inactive, rented.
	Status string `gorm:"column:status;index;type:varchar(20);default:active"`
}

// TableName maps the struct to the listings table.
func (Listing) TableName() string {
	return "listings"
}
