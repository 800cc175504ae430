package match

import (
	"time"

	"go.uber.org/zap"

	"apna_room_server/internal/dao/mysql"
	"apna_room_server/internal/dto/request"
	"apna_room_server/internal/dto/respond"
	"apna_room_server/internal/model"
	"apna_room_server/pkg/constants"
	"apna_room_server/pkg/errorx"
)

type matchService struct {
	repos *mysql.Repositories
}

// NewMatchService creates the matching service over the repository
// aggregate.
func NewMatchService(repos *mysql.Repositories) *matchService {
	return &matchService{repos: repos}
}

// normalizePage clamps pagination input to sane values.
func normalizePage(page, limit int) (offset, normLimit int, normPage int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = constants.DEFAULT_PAGE_LIMIT
	}
	if limit > constants.MAX_PAGE_LIMIT {
		limit = constants.MAX_PAGE_LIMIT
	}
	return (page - 1) * limit, limit, page
}

// CalculateCompatibility scores the seeker against the listing and
// upserts the match row. Recomputing always resets status to pending,
// so a lister re-reviews after the seeker's preferences change.
func (s *matchService) CalculateCompatibility(seekerId, listingId string) (*respond.MatchRespond, error) {
	seeker, err := s.repos.User.FindByUuid(seekerId)
	if err != nil {
		return nil, err
	}
	if seeker.Role != model.RoleSeeker {
		return nil, errorx.New(errorx.CodeForbidden, "only seekers can calculate compatibility")
	}

	listing, err := s.repos.Listing.FindByUuid(listingId)
	if err != nil {
		return nil, err
	}

	prefs, err := s.repos.Preference.FindByUserId(seekerId)
	if err != nil {
		if !errorx.IsNotFound(err) {
			return nil, err
		}
		prefs = nil
	}

	score := Score(prefs, listing)

	match := model.Match{
		SeekerId:           seekerId,
		ListingId:          listingId,
		CompatibilityScore: float64(score),
		Status:             model.MatchPending,
	}
	if err := s.repos.Match.Upsert(&match); err != nil {
		return nil, err
	}

	stored, err := s.repos.Match.FindBySeekerAndListing(seekerId, listingId)
	if err != nil {
		return nil, err
	}
	return s.toMatchRespond(stored, listing), nil
}

// UpdatePreferences replaces the seeker's stated preferences.
func (s *matchService) UpdatePreferences(userId string, req request.UpdatePreferencesRequest) error {
	user, err := s.repos.User.FindByUuid(userId)
	if err != nil {
		return err
	}
	if user.Role != model.RoleSeeker {
		return errorx.New(errorx.CodeForbidden, "only seekers have matching preferences")
	}

	prefs := model.SeekerPreferences{
		UserId:             userId,
		BudgetMin:          req.BudgetMin,
		BudgetMax:          req.BudgetMax,
		PreferredLocations: req.PreferredLocations,
		RoomTypePreference: req.RoomTypePreference,
		GenderPreference:   req.GenderPreference,
	}
	return s.repos.Preference.Upsert(&prefs)
}

// GetSeekerMatches pages a seeker's matches, best score first.
func (s *matchService) GetSeekerMatches(seekerId string, page, limit int) (*respond.MatchListRespond, error) {
	offset, limit, page := normalizePage(page, limit)
	matches, total, err := s.repos.Match.FindBySeekerId(seekerId, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.toMatchList(matches, total, page, limit), nil
}

// GetListerMatches pages matches against all of a lister's listings.
func (s *matchService) GetListerMatches(listerId string, page, limit int) (*respond.MatchListRespond, error) {
	offset, limit, page := normalizePage(page, limit)

	listings, err := s.repos.Listing.FindByListerId(listerId)
	if err != nil {
		return nil, err
	}
	listingIds := make([]string, 0, len(listings))
	for _, l := range listings {
		listingIds = append(listingIds, l.Uuid)
	}

	matches, total, err := s.repos.Match.FindByListingIds(listingIds, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.toMatchList(matches, total, page, limit), nil
}

// UpdateMatchStatus lets the owning lister respond to a match.
func (s *matchService) UpdateMatchStatus(callerId string, matchId uint, status string) error {
	match, err := s.repos.Match.FindById(matchId)
	if err != nil {
		return err
	}
	listing, err := s.repos.Listing.FindByUuid(match.ListingId)
	if err != nil {
		return err
	}
	if listing.ListerId != callerId {
		return errorx.New(errorx.CodeForbidden, "only the listing owner can update this match")
	}
	return s.repos.Match.UpdateStatus(matchId, status)
}

// SaveListing adds a favourite after checking the listing exists.
func (s *matchService) SaveListing(userId, listingId string) error {
	if _, err := s.repos.Listing.FindByUuid(listingId); err != nil {
		return err
	}
	return s.repos.SavedListing.Create(&model.SavedListing{
		UserId:    userId,
		ListingId: listingId,
	})
}

// UnsaveListing removes a favourite.
func (s *matchService) UnsaveListing(userId, listingId string) error {
	return s.repos.SavedListing.Delete(userId, listingId)
}

// GetSavedListings pages the caller's favourites, newest first.
func (s *matchService) GetSavedListings(userId string, page, limit int) (*respond.SavedListingListRespond, error) {
	offset, limit, page := normalizePage(page, limit)
	saved, total, err := s.repos.SavedListing.FindByUserId(userId, offset, limit)
	if err != nil {
		return nil, err
	}

	out := make([]respond.SavedListingRespond, 0, len(saved))
	for _, sl := range saved {
		item := respond.SavedListingRespond{
			ListingId: sl.ListingId,
			SavedAt:   sl.CreatedAt.Format(time.RFC3339),
		}
		if listing, err := s.repos.Listing.FindByUuid(sl.ListingId); err == nil {
			item.Title = listing.Title
			item.Location = listing.Location
			item.RentAmount = listing.RentAmount
			item.Status = listing.Status
		} else {
			zap.L().Warn("saved listing lookup failed", zap.String("listing_id", sl.ListingId), zap.Error(err))
		}
		out = append(out, item)
	}

	return &respond.SavedListingListRespond{
		Listings: out,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

func (s *matchService) toMatchRespond(match *model.Match, listing *model.Listing) *respond.MatchRespond {
	r := &respond.MatchRespond{
		Id:                 match.ID,
		SeekerId:           match.SeekerId,
		ListingId:          match.ListingId,
		CompatibilityScore: match.CompatibilityScore,
		Status:             match.Status,
		UpdatedAt:          match.UpdatedAt.Format(time.RFC3339),
	}
	if listing != nil {
		r.ListingTitle = listing.Title
		r.ListingLocation = listing.Location
		r.RentAmount = listing.RentAmount
	}
	return r
}

func (s *matchService) toMatchList(matches []model.Match, total int64, page, limit int) *respond.MatchListRespond {
	out := make([]respond.MatchRespond, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		var listing *model.Listing
		if l, err := s.repos.Listing.FindByUuid(m.ListingId); err == nil {
			listing = l
		}
		out = append(out, *s.toMatchRespond(m, listing))
	}
	return &respond.MatchListRespond{
		Matches: out,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}
}
