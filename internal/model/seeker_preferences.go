package model

import "gorm.io/gorm"

// SeekerPreferences are a seeker's stated wishes, the read-only input to
// compatibility scoring. Zero/empty fields mean "no preference" and the
// corresponding scoring factor is skipped.
type SeekerPreferences struct {
	gorm.Model

	// UserId references the seeker's uuid; one row per seeker.
	UserId string `gorm:"column:user_id;uniqueIndex;type:char(20);not null"`

	BudgetMin float64 `gorm:"column:budget_min;type:decimal(10,2)"`
	BudgetMax float64 `gorm:"column:budget_max;type:decimal(10,2)"`

	// PreferredLocations are matched case-insensitively as substrings of a
	// listing's location.
	PreferredLocations StringList `gorm:"column:preferred_locations;type:TEXT"`

	// RoomTypePreference holds acceptable room type values.
	RoomTypePreference StringList `gorm:"column:room_type_preference;type:TEXT"`

	// GenderPreference is one of any, male, female; empty means unspecified.
	GenderPreference string `gorm:"column:gender_preference;type:varchar(20)"`
}

// TableName maps the struct to the seeker_preferences table.
func (SeekerPreferences) TableName() string {
	return "seeker_preferences"
}
