package repository

import (
	"apna_room_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates the match repository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Upsert(match *model.Match) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "seeker_id"}, {Name: "listing_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"compatibility_score", "status", "updated_at",
		}),
	}).Create(match).Error
	if err != nil {
		return wrapDBErrorf(err, "upsert match seeker=%s listing=%s", match.SeekerId, match.ListingId)
	}
	return nil
}

func (r *matchRepository) FindById(id uint) (*model.Match, error) {
	var match model.Match
	if err := r.db.First(&match, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "find match id=%d", id)
	}
	return &match, nil
}

func (r *matchRepository) FindBySeekerAndListing(seekerId, listingId string) (*model.Match, error) {
	var match model.Match
	if err := r.db.Where("seeker_id = ? AND listing_id = ?", seekerId, listingId).First(&match).Error; err != nil {
		return nil, wrapDBErrorf(err, "find match seeker=%s listing=%s", seekerId, listingId)
	}
	return &match, nil
}

func (r *matchRepository) FindBySeekerId(seekerId string, offset, limit int) ([]model.Match, int64, error) {
	var matches []model.Match
	var total int64
	q := r.db.Model(&model.Match{}).Where("seeker_id = ?", seekerId)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "count matches seeker=%s", seekerId)
	}
	if err := q.Order("compatibility_score DESC").Offset(offset).Limit(limit).Find(&matches).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "find matches seeker=%s", seekerId)
	}
	return matches, total, nil
}

func (r *matchRepository) FindByListingIds(listingIds []string, offset, limit int) ([]model.Match, int64, error) {
	if len(listingIds) == 0 {
		return nil, 0, nil
	}
	var matches []model.Match
	var total int64
	q := r.db.Model(&model.Match{}).Where("listing_id IN ?", listingIds)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "count matches by listings")
	}
	if err := q.Order("compatibility_score DESC").Offset(offset).Limit(limit).Find(&matches).Error; err != nil {
		return nil, 0, wrapDBError(err, "find matches by listings")
	}
	return matches, total, nil
}

func (r *matchRepository) UpdateStatus(id uint, status string) error {
	res := r.db.Model(&model.Match{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "update match status id=%d", id)
	}
	if res.RowsAffected == 0 {
		return wrapDBErrorf(gorm.ErrRecordNotFound, "match id=%d", id)
	}
	return nil
}
