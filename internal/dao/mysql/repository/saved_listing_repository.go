package repository

import (
	"apna_room_server/internal/model"
	"apna_room_server/pkg/errorx"

	"gorm.io/gorm"
)

type savedListingRepository struct {
	db *gorm.DB
}

// NewSavedListingRepository creates the saved-listing repository.
func NewSavedListingRepository(db *gorm.DB) SavedListingRepository {
	return &savedListingRepository{db: db}
}

func (r *savedListingRepository) Create(saved *model.SavedListing) error {
	var count int64
	err := r.db.Model(&model.SavedListing{}).
		Where("user_id = ? AND listing_id = ?", saved.UserId, saved.ListingId).
		Count(&count).Error
	if err != nil {
		return wrapDBError(err, "check saved listing")
	}
	if count > 0 {
		return errorx.New(errorx.CodeInvalidParam, "listing already saved")
	}
	if err := r.db.Create(saved).Error; err != nil {
		return wrapDBError(err, "save listing")
	}
	return nil
}

func (r *savedListingRepository) Delete(userId, listingId string) error {
	res := r.db.Where("user_id = ? AND listing_id = ?", userId, listingId).
		Delete(&model.SavedListing{})
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "unsave listing user=%s listing=%s", userId, listingId)
	}
	if res.RowsAffected == 0 {
		return wrapDBErrorf(gorm.ErrRecordNotFound, "saved listing user=%s listing=%s", userId, listingId)
	}
	return nil
}

func (r *savedListingRepository) FindByUserId(userId string, offset, limit int) ([]model.SavedListing, int64, error) {
	var saved []model.SavedListing
	var total int64
	q := r.db.Model(&model.SavedListing{}).Where("user_id = ?", userId)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "count saved listings user=%s", userId)
	}
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&saved).Error; err != nil {
		return nil, 0, wrapDBErrorf(err, "find saved listings user=%s", userId)
	}
	return saved, total, nil
}
