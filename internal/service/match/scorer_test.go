package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"apna_room_server/internal/model"
)

func TestScoreNoPreferences(t *testing.T) {
	listing := &model.Listing{Location: "Koramangala, Bangalore", RoomType: model.RoomTypePrivate, RentAmount: 15000}

	assert.Equal(t, 50, Score(nil, listing), "missing preference row scores neutral")
	assert.Equal(t, 50, Score(&model.SeekerPreferences{}, listing), "empty preferences score neutral")
}

func TestScoreBudgetOnly(t *testing.T) {
	listing := func(rent float64) *model.Listing {
		return &model.Listing{Location: "Indiranagar", RoomType: model.RoomTypeShared, RentAmount: rent}
	}
	prefs := &model.SeekerPreferences{BudgetMin: 1000, BudgetMax: 2000}

	assert.Equal(t, 100, Score(prefs, listing(1500)), "rent at budget midpoint")
	assert.Equal(t, 0, Score(&model.SeekerPreferences{BudgetMin: 1000, BudgetMax: 1000}, listing(2000)),
		"rent at double the midpoint floors at zero")
	assert.Equal(t, 67, Score(prefs, listing(2000)), "one third over midpoint")
}

func TestScoreLocationMatching(t *testing.T) {
	listing := &model.Listing{Location: "HSR Layout, Bangalore", RoomType: model.RoomTypeStudio, RentAmount: 12000}

	hit := &model.SeekerPreferences{PreferredLocations: model.StringList{"hsr layout"}}
	miss := &model.SeekerPreferences{PreferredLocations: model.StringList{"Whitefield"}}

	assert.Equal(t, 100, Score(hit, listing), "case-insensitive substring match")
	assert.Equal(t, 0, Score(miss, listing))
}

func TestScoreRoomTypeAndGender(t *testing.T) {
	listing := &model.Listing{
		Location:         "Jayanagar",
		RoomType:         model.RoomType2BHK,
		GenderPreference: model.GenderFemale,
		RentAmount:       20000,
	}

	prefs := &model.SeekerPreferences{
		RoomTypePreference: model.StringList{model.RoomType1BHK, model.RoomType2BHK},
		GenderPreference:   model.GenderAny,
	}
	assert.Equal(t, 100, Score(prefs, listing), "room type member and seeker open to any gender")

	prefs.GenderPreference = model.GenderMale
	// room type 100 * 0.20, gender 0 * 0.15, normalized over 0.35
	assert.Equal(t, 57, Score(prefs, listing))
}

func TestScoreSkipsGenderWhenListingSilent(t *testing.T) {
	listing := &model.Listing{Location: "BTM", RoomType: model.RoomTypePrivate, RentAmount: 9000}
	prefs := &model.SeekerPreferences{GenderPreference: model.GenderFemale}

	assert.Equal(t, 50, Score(prefs, listing), "gender factor needs both sides stated")
}

func TestScoreAllFactors(t *testing.T) {
	listing := &model.Listing{
		Location:         "Koramangala 5th Block, Bangalore",
		RoomType:         model.RoomTypePrivate,
		GenderPreference: model.GenderAny,
		RentAmount:       15000,
	}
	prefs := &model.SeekerPreferences{
		BudgetMin:          14000,
		BudgetMax:          16000,
		PreferredLocations: model.StringList{"Koramangala"},
		RoomTypePreference: model.StringList{model.RoomTypePrivate},
		GenderPreference:   model.GenderAny,
	}

	assert.Equal(t, 100, Score(prefs, listing))
}

func TestScoreBounds(t *testing.T) {
	listing := &model.Listing{Location: "Far Away", RoomType: model.RoomTypeShared, RentAmount: 90000}
	prefs := &model.SeekerPreferences{
		BudgetMin:          1000,
		BudgetMax:          2000,
		PreferredLocations: model.StringList{"Downtown"},
		RoomTypePreference: model.StringList{model.RoomTypePrivate},
	}

	score := Score(prefs, listing)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
	assert.Equal(t, 0, score, "every factor misses")
}
