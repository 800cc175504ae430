package match

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"apna_room_server/internal/dao/mysql"
	"apna_room_server/internal/dto/request"
	"apna_room_server/internal/model"
	"apna_room_server/pkg/errorx"
)

func setupRepos(t *testing.T) *mysql.Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Listing{}, &model.SeekerPreferences{},
		&model.Match{}, &model.Conversation{}, &model.Message{}, &model.SavedListing{},
	))
	return mysql.NewRepositories(db)
}

func seedSeekerAndListing(t *testing.T, repos *mysql.Repositories) (seekerId, listerId, listingId string) {
	t.Helper()
	seeker := &model.User{Uuid: "U-seeker-0000000001", Email: "seeker@test.dev", FullName: "Sana", Role: model.RoleSeeker, RawPassword: "secret123"}
	lister := &model.User{Uuid: "U-lister-0000000001", Email: "lister@test.dev", FullName: "Leo", Role: model.RoleLister, RawPassword: "secret123"}
	require.NoError(t, repos.User.Create(seeker))
	require.NoError(t, repos.User.Create(lister))

	listing := &model.Listing{
		Uuid: "L-flat-000000000001", ListerId: lister.Uuid,
		Title: "Sunny 2BHK", Location: "Koramangala, Bangalore",
		RentAmount: 15000, RoomType: model.RoomType2BHK,
		GenderPreference: model.GenderAny, Status: model.ListingActive,
	}
	require.NoError(t, repos.Listing.Create(listing))
	return seeker.Uuid, lister.Uuid, listing.Uuid
}

func TestCalculateCompatibilityUpsertsAndResetsStatus(t *testing.T) {
	repos := setupRepos(t)
	svc := NewMatchService(repos)
	seekerId, listerId, listingId := seedSeekerAndListing(t, repos)

	require.NoError(t, svc.UpdatePreferences(seekerId, request.UpdatePreferencesRequest{
		BudgetMin: 14000, BudgetMax: 16000,
		PreferredLocations: []string{"Koramangala"},
	}))

	first, err := svc.CalculateCompatibility(seekerId, listingId)
	require.NoError(t, err)
	require.Equal(t, model.MatchPending, first.Status)
	require.Equal(t, float64(100), first.CompatibilityScore)

	// The lister accepts, then the seeker changes preferences and
	// recalculates: same row, new score, status back to pending.
	require.NoError(t, svc.UpdateMatchStatus(listerId, first.Id, model.MatchAccepted))

	require.NoError(t, svc.UpdatePreferences(seekerId, request.UpdatePreferencesRequest{
		PreferredLocations: []string{"Whitefield"},
	}))
	second, err := svc.CalculateCompatibility(seekerId, listingId)
	require.NoError(t, err)
	require.Equal(t, first.Id, second.Id, "recalculation reuses the row")
	require.Equal(t, model.MatchPending, second.Status)
	require.Equal(t, float64(0), second.CompatibilityScore)

	listed, err := svc.GetSeekerMatches(seekerId, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), listed.Total)
}

func TestCalculateCompatibilityWithoutPreferences(t *testing.T) {
	repos := setupRepos(t)
	svc := NewMatchService(repos)
	seekerId, _, listingId := seedSeekerAndListing(t, repos)

	resp, err := svc.CalculateCompatibility(seekerId, listingId)
	require.NoError(t, err)
	require.Equal(t, float64(50), resp.CompatibilityScore, "no preference row scores neutral")
}

func TestCalculateCompatibilityRejectsLister(t *testing.T) {
	repos := setupRepos(t)
	svc := NewMatchService(repos)
	_, listerId, listingId := seedSeekerAndListing(t, repos)

	_, err := svc.CalculateCompatibility(listerId, listingId)
	require.Error(t, err)
	require.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestUpdateMatchStatusOwnershipCheck(t *testing.T) {
	repos := setupRepos(t)
	svc := NewMatchService(repos)
	seekerId, _, listingId := seedSeekerAndListing(t, repos)

	resp, err := svc.CalculateCompatibility(seekerId, listingId)
	require.NoError(t, err)

	err = svc.UpdateMatchStatus(seekerId, resp.Id, model.MatchAccepted)
	require.Equal(t, errorx.CodeForbidden, errorx.GetCode(err), "only the listing owner may respond")
}

func TestSavedListingsRoundTrip(t *testing.T) {
	repos := setupRepos(t)
	svc := NewMatchService(repos)
	seekerId, _, listingId := seedSeekerAndListing(t, repos)

	require.NoError(t, svc.SaveListing(seekerId, listingId))

	err := svc.SaveListing(seekerId, listingId)
	require.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err), "duplicate save rejected")

	saved, err := svc.GetSavedListings(seekerId, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), saved.Total)
	require.Equal(t, "Sunny 2BHK", saved.Listings[0].Title)

	require.NoError(t, svc.UnsaveListing(seekerId, listingId))
	err = svc.UnsaveListing(seekerId, listingId)
	require.Equal(t, errorx.CodeNotFound, errorx.GetCode(err), "second unsave finds nothing")
}
