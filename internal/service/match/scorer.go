// Package match computes seeker/listing compatibility and manages the
// resulting match records and saved listings.
package match

import (
	"math"
	"strings"

	"apna_room_server/internal/model"
)

// Factor weights. Only factors with stated preferences participate;
// the weighted sum is normalized over the weights actually applied.
const (
	weightBudget   = 0.40
	weightLocation = 0.25
	weightRoomType = 0.20
	weightGender   = 0.15
)

// neutralScore is returned when the seeker stated no preferences at
// all, so an empty profile neither boosts nor buries a listing.
const neutralScore = 50

// Score computes the compatibility between a seeker's preferences and
// a listing, as an integer in [0, 100]. prefs may be nil, meaning no
// preferences on record.
func Score(prefs *model.SeekerPreferences, listing *model.Listing) int {
	if prefs == nil {
		return neutralScore
	}

	var total, weights float64

	if prefs.BudgetMin != 0 && prefs.BudgetMax != 0 {
		total += budgetScore(prefs.BudgetMin, prefs.BudgetMax, listing.RentAmount) * weightBudget
		weights += weightBudget
	}

	if len(prefs.PreferredLocations) > 0 {
		total += locationScore(prefs.PreferredLocations, listing.Location) * weightLocation
		weights += weightLocation
	}

	if len(prefs.RoomTypePreference) > 0 {
		total += roomTypeScore(prefs.RoomTypePreference, listing.RoomType) * weightRoomType
		weights += weightRoomType
	}

	if prefs.GenderPreference != "" && listing.GenderPreference != "" {
		total += genderScore(prefs.GenderPreference, listing.GenderPreference) * weightGender
		weights += weightGender
	}

	if weights == 0 {
		return neutralScore
	}
	return int(math.Round(total / weights))
}

// budgetScore compares the rent against the midpoint of the seeker's
// budget range. Exact midpoint scores 100, dropping linearly with the
// relative deviation and flooring at 0.
func budgetScore(budgetMin, budgetMax, rent float64) float64 {
	avg := (budgetMin + budgetMax) / 2
	return math.Max(0, 100-math.Abs(avg-rent)/avg*100)
}

// locationScore is all-or-nothing: 100 when any preferred location is
// a case-insensitive substring of the listing's location.
func locationScore(preferred []string, location string) float64 {
	loc := strings.ToLower(location)
	for _, p := range preferred {
		if strings.Contains(loc, strings.ToLower(p)) {
			return 100
		}
	}
	return 0
}

// roomTypeScore is all-or-nothing on exact membership.
func roomTypeScore(preferred []string, roomType string) float64 {
	for _, p := range preferred {
		if p == roomType {
			return 100
		}
	}
	return 0
}

// genderScore is all-or-nothing: "any" on the seeker side matches
// everything, otherwise the values must agree.
func genderScore(seekerPref, listingPref string) float64 {
	if seekerPref == model.GenderAny || seekerPref == listingPref {
		return 100
	}
	return 0
}
